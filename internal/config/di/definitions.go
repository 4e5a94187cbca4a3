package di

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sarulabs/di/v2"
	"github.com/sevenong/nft-marketplace/internal/api"
	"github.com/sevenong/nft-marketplace/internal/audit"
	"github.com/sevenong/nft-marketplace/internal/bank"
	"github.com/sevenong/nft-marketplace/internal/config"
	"github.com/sevenong/nft-marketplace/internal/elastic_search"
	"github.com/sevenong/nft-marketplace/internal/marketplace"
	"github.com/sevenong/nft-marketplace/internal/messenger"
	"github.com/sevenong/nft-marketplace/internal/metadata"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"github.com/sevenong/nft-marketplace/internal/repository"
	"go.uber.org/zap"
)

var Definitions = []di.Def{
	{
		Name: "elastic",
		Build: func(ctn di.Container) (interface{}, error) {
			elastic, err := elastic_search.New()
			if err != nil {
				zap.L().With(zap.Error(err)).Fatal("Failed to start ES")
			}

			return elastic, nil
		},
	},
	{
		Name: "bank",
		Build: func(ctn di.Container) (interface{}, error) {
			return bank.NewVault(), nil
		},
	},
	{
		Name: "registries",
		Build: func(ctn di.Container) (interface{}, error) {
			market := config.Get().Market

			return registry.NewResolver(registry.NewTokenRegistry(
				market.CollectionContract,
				market.CollectionName,
				market.CollectionSymbol,
				market.Admin,
			)), nil
		},
	},
	{
		Name: "engine",
		Build: func(ctn di.Container) (interface{}, error) {
			market := config.Get().Market

			return marketplace.NewEngine(
				market.Address,
				market.Admin,
				market.FeePercent,
				ctn.Get("registries").(registry.Resolver),
				ctn.Get("bank").(bank.Bank),
			)
		},
	},
	{
		Name: "metadata.client",
		Build: func(ctn di.Container) (interface{}, error) {
			return metadata.NewRetryableClient(), nil
		},
	},
	{
		Name: "metadata",
		Build: func(ctn di.Container) (interface{}, error) {
			return metadata.NewMetadataService(ctn.Get("metadata.client").(*retryablehttp.Client)), nil
		},
	},
	{
		Name: "audit",
		Build: func(ctn di.Container) (interface{}, error) {
			return audit.NewIndexer(
				ctn.Get("elastic").(elastic_search.Index),
				ctn.Get("registries").(registry.Resolver),
			), nil
		},
	},
	{
		Name: "messenger",
		Build: func(ctn di.Container) (interface{}, error) {
			return messenger.NewMessenger(config.Get().AmqpUri), nil
		},
	},
	{
		Name: "market_action.repo",
		Build: func(ctn di.Container) (interface{}, error) {
			return repository.NewMarketActionRepository(ctn.Get("elastic").(elastic_search.Index)), nil
		},
	},
	{
		Name: "api",
		Build: func(ctn di.Container) (interface{}, error) {
			return api.NewServer(
				ctn.Get("engine").(marketplace.Engine),
				ctn.Get("registries").(registry.Resolver),
				ctn.Get("metadata").(metadata.Service),
			), nil
		},
	},
}
