package factory

import (
	"github.com/nu7hatch/gouuid"
	"github.com/sevenong/nft-marketplace/internal/entity"
	"time"
)

func CreateMintAction(token entity.Token) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  token.Contract,
		TokenId:   token.TokenId,
		Action:    entity.MintAction,
		From:      "",
		To:        token.Owner,
		Timestamp: time.Now().UTC(),
	}
}

func CreateTransferAction(token entity.Token, from, to string) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  token.Contract,
		TokenId:   token.TokenId,
		Action:    entity.TransferAction,
		From:      from,
		To:        to,
		Timestamp: time.Now().UTC(),
	}
}

func CreateListingAction(listing entity.Listing) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  listing.Contract,
		TokenId:   listing.TokenId,
		Action:    entity.ListingAction,
		From:      listing.Seller,
		Cost:      listing.Price,
		Timestamp: time.Now().UTC(),
	}
}

func CreateListingUpdateAction(listing entity.Listing) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  listing.Contract,
		TokenId:   listing.TokenId,
		Action:    entity.ListingUpdateAction,
		From:      listing.Seller,
		Cost:      listing.Price,
		Timestamp: time.Now().UTC(),
	}
}

func CreateDelistingAction(listing entity.Listing) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  listing.Contract,
		TokenId:   listing.TokenId,
		Action:    entity.DelistingAction,
		From:      listing.Seller,
		To:        listing.Seller,
		Timestamp: time.Now().UTC(),
	}
}

func CreateSaleAction(listing entity.Listing, buyer string, fee uint64) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  listing.Contract,
		TokenId:   listing.TokenId,
		Action:    entity.SaleAction,
		From:      listing.Seller,
		To:        buyer,
		Cost:      listing.Price,
		Fee:       fee,
		Timestamp: time.Now().UTC(),
	}
}

func CreateRecoveryAction(contract string, tokenId uint64, admin, to string) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Contract:  contract,
		TokenId:   tokenId,
		Action:    entity.RecoveryAction,
		From:      admin,
		To:        to,
		Timestamp: time.Now().UTC(),
	}
}

func CreateWithdrawalAction(account string, amount uint64) entity.MarketAction {
	return entity.MarketAction{
		ID:        actionId(),
		Action:    entity.WithdrawalAction,
		To:        account,
		Cost:      amount,
		Timestamp: time.Now().UTC(),
	}
}

func actionId() string {
	u, _ := uuid.NewV4()

	return u.String()
}
