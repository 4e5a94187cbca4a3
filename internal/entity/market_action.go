package entity

import (
	"crypto/md5"
	"fmt"
	"time"
)

// MarketAction is the audit record emitted for every state change the
// marketplace or a token registry commits. Actions are indexed for
// external consumption and never read back by the engine itself.
type MarketAction struct {
	ID        string     `json:"id"`
	Contract  string     `json:"contract"`
	TokenId   uint64     `json:"tokenId"`
	Action    ActionType `json:"action"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Cost      uint64     `json:"cost"`
	Fee       uint64     `json:"fee"`
	Timestamp time.Time  `json:"timestamp"`
}

type ActionType string

const (
	MintAction          ActionType = "mint"
	TransferAction      ActionType = "transfer"
	ListingAction       ActionType = "listing"
	ListingUpdateAction ActionType = "listing-update"
	DelistingAction     ActionType = "delisting"
	SaleAction          ActionType = "sale"
	RecoveryAction      ActionType = "recovery"
	WithdrawalAction    ActionType = "withdrawal"
)

func (a MarketAction) Slug() string {
	return CreateMarketActionSlug(a.TokenId, a.Contract, a.ID, string(a.Action))
}

func CreateMarketActionSlug(tokenId uint64, contract, id, action string) string {
	data := []byte(fmt.Sprintf("marketaction-%d-%s-%s-%s", tokenId, contract, id, action))
	return fmt.Sprintf("%x", md5.Sum(data))
}
