package marketplace

import (
	"testing"
	"testing/quick"

	"github.com/sevenong/nft-marketplace/internal/bank"
	"github.com/sevenong/nft-marketplace/internal/registry"
)

// For any price and fee percent the fee split conserves the sale price:
// the seller credit plus the fee credit always equals the price, and
// no currency is created or destroyed across the full trade cycle.
func TestProperty_FeeSplitConservesPrice(t *testing.T) {
	property := func(price uint64, feePercent uint) bool {
		price = price%1_000_000_000_000 + 1
		feePercent = feePercent % (MaxFeePercent + 1)

		reg := registry.NewTokenRegistry(contract, "7ONG COLLECTION", "7ONG", admin)
		vault := bank.NewVault()

		engine, err := NewEngine(marketAddr, admin, feePercent, registry.NewResolver(reg), vault)
		if err != nil {
			return false
		}

		tokenId, err := reg.Mint(admin, seller, "ipfs://QmProp", "image/png")
		if err != nil {
			return false
		}
		reg.SetApprovalForAll(seller, marketAddr, true)

		vault.Deposit(buyer, price)
		supply := vault.BalanceOf(buyer)

		if err := engine.ListItem(seller, contract, tokenId, price); err != nil {
			return false
		}
		if err := engine.BuyItem(buyer, contract, tokenId, price); err != nil {
			return false
		}

		expectedFee := price * uint64(feePercent) / 100

		if engine.ProceedsOf(admin) != expectedFee {
			t.Logf("fee mismatch: price=%d feePercent=%d fee=%d", price, feePercent, engine.ProceedsOf(admin))
			return false
		}
		if engine.ProceedsOf(seller)+engine.ProceedsOf(admin) != price {
			t.Logf("split does not conserve price: price=%d seller=%d fee=%d",
				price, engine.ProceedsOf(seller), engine.ProceedsOf(admin))
			return false
		}

		total := vault.BalanceOf(buyer) + vault.BalanceOf(seller) + vault.BalanceOf(admin) + vault.BalanceOf(marketAddr)

		return total == supply
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 100}); err != nil {
		t.Errorf("property failed: %v", err)
	}
}

// A rejected payment must leave the engine exactly as it was: the
// listing live, the ledger empty and the token still in custody.
func TestProperty_FailedPaymentLeavesNoTrace(t *testing.T) {
	property := func(price uint64, shortfall uint64) bool {
		price = price%1_000_000 + 1
		deposit := price - 1 - shortfall%price

		reg := registry.NewTokenRegistry(contract, "7ONG COLLECTION", "7ONG", admin)
		vault := bank.NewVault()

		engine, err := NewEngine(marketAddr, admin, 2, registry.NewResolver(reg), vault)
		if err != nil {
			return false
		}

		tokenId, err := reg.Mint(admin, seller, "ipfs://QmProp", "image/png")
		if err != nil {
			return false
		}
		reg.SetApprovalForAll(seller, marketAddr, true)
		vault.Deposit(buyer, deposit)

		if err := engine.ListItem(seller, contract, tokenId, price); err != nil {
			return false
		}

		if err := engine.BuyItem(buyer, contract, tokenId, price); err != bank.ErrInsufficientFunds {
			return false
		}

		owner, err := reg.OwnerOf(tokenId)
		if err != nil || owner != marketAddr {
			return false
		}

		listing := engine.GetListing(contract, tokenId)

		return listing != nil &&
			listing.Price == price &&
			engine.ProceedsOf(seller) == 0 &&
			engine.ProceedsOf(admin) == 0 &&
			vault.BalanceOf(buyer) == deposit
	}

	if err := quick.Check(property, &quick.Config{MaxCount: 100}); err != nil {
		t.Errorf("property failed: %v", err)
	}
}
