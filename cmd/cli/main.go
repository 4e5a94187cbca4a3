package main

import (
	"encoding/json"
	"fmt"
	"github.com/sevenong/nft-marketplace/internal/config"
	"github.com/sevenong/nft-marketplace/internal/config/di"
	"github.com/sevenong/nft-marketplace/internal/repository"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"os"
)

var (
	container  *di.Container
	actionRepo repository.MarketActionRepository
)

func main() {
	config.Init("cli")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "actions",
				Usage:  "Show the audit trail for a token",
				Action: getActions,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true, Usage: "Collection contract address"},
					&cli.Uint64Flag{Name: "tokenId", Required: true, Usage: "Token id"},
					&cli.IntFlag{Name: "size", Value: 20, Usage: "Page size"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
			},
			{
				Name:   "sales",
				Usage:  "Show the sales recorded for a collection",
				Action: getSales,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "contract", Required: true, Usage: "Collection contract address"},
					&cli.IntFlag{Name: "size", Value: 20, Usage: "Page size"},
					&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
				},
			},
			{
				Name:   "simulate",
				Usage:  "Run a full trade cycle (mint, list, buy, withdraw) in process",
				Action: simulate,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "seller", Value: "0x00000000000000000000000000000073656c6c", Usage: "Seller address"},
					&cli.StringFlag{Name: "buyer", Value: "0x000000000000000000000000000000627579ff", Usage: "Buyer address"},
					&cli.Uint64Flag{Name: "price", Value: 1000, Usage: "Listing price"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start CLI")
	}
}

func getActions(c *cli.Context) error {
	actionRepo = container.GetMarketActionRepo()

	actions, total, err := actionRepo.GetActionsByToken(c.String("contract"), c.Uint64("tokenId"), c.Int("size"), c.Int("page"))
	if err != nil {
		return err
	}

	fmt.Printf("%d actions\n", total)

	return printJson(actions)
}

func getSales(c *cli.Context) error {
	actionRepo = container.GetMarketActionRepo()

	sales, total, err := actionRepo.GetSalesByContract(c.String("contract"), c.Int("size"), c.Int("page"))
	if err != nil {
		return err
	}

	fmt.Printf("%d sales\n", total)

	return printJson(sales)
}

func simulate(c *cli.Context) error {
	market := config.Get().Market

	engine := container.GetEngine()
	bank := container.GetBank()

	reg, err := container.GetRegistries().Get(market.CollectionContract)
	if err != nil {
		return err
	}

	seller := c.String("seller")
	buyer := c.String("buyer")
	price := c.Uint64("price")

	tokenId, err := reg.Mint(reg.Owner(), seller, "ipfs://QmSimulated", "image/png")
	if err != nil {
		return err
	}

	reg.SetApprovalForAll(seller, engine.Address(), true)
	bank.Deposit(buyer, price)

	if err := engine.ListItem(seller, market.CollectionContract, tokenId, price); err != nil {
		return err
	}

	if err := engine.BuyItem(buyer, market.CollectionContract, tokenId, price); err != nil {
		return err
	}

	sellerAmount, err := engine.Withdraw(seller)
	if err != nil {
		return err
	}

	adminAmount, err := engine.Withdraw(engine.Admin())
	if err != nil {
		return err
	}

	owner, err := reg.OwnerOf(tokenId)
	if err != nil {
		return err
	}

	return printJson(map[string]interface{}{
		"tokenId":        tokenId,
		"owner":          owner,
		"price":          price,
		"sellerProceeds": sellerAmount,
		"marketFee":      adminAmount,
	})
}

func printJson(body interface{}) error {
	out, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))

	return nil
}
