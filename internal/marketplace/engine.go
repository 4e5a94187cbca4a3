package marketplace

import (
	"github.com/sevenong/nft-marketplace/internal/bank"
	"github.com/sevenong/nft-marketplace/internal/entity"
	"github.com/sevenong/nft-marketplace/internal/event"
	"github.com/sevenong/nft-marketplace/internal/factory"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"go.uber.org/zap"
	"sync"
)

const MaxFeePercent uint = 20

// Engine is the listing/escrow/ledger core. It owns the listing table
// and the proceeds ledger exclusively; the token registries and the bank
// are collaborators it commands through their interfaces.
//
// Every write either fully applies or has no effect. State that marks a
// resource as consumed (a listing deleted, a balance zeroed) is always
// committed before the external call that could re-enter the engine, and
// a failed external call triggers the exact compensating update.
type Engine interface {
	ListItem(caller, contract string, tokenId, price uint64) error
	UpdateListing(caller, contract string, tokenId, newPrice uint64) error
	CancelListing(caller, contract string, tokenId uint64) error
	BuyItem(buyer, contract string, tokenId, amount uint64) error
	Withdraw(caller string) (uint64, error)

	SetFeePercent(caller string, feePercent uint) error
	Pause(caller string) error
	Unpause(caller string) error
	TransferAdmin(caller, newAdmin string) error
	Recover(caller, contract string, tokenId uint64, to string) error

	GetListing(contract string, tokenId uint64) *entity.Listing
	ProceedsOf(account string) uint64
	FeePercent() uint
	IsPaused() bool
	Admin() string
	Address() string
}

type listingKey struct {
	contract string
	tokenId  uint64
}

type engine struct {
	mu sync.Mutex

	address    string
	admin      string
	feePercent uint
	paused     bool

	listings map[listingKey]entity.Listing
	proceeds map[string]uint64

	registries registry.Resolver
	bank       bank.Bank
}

func NewEngine(address, admin string, feePercent uint, registries registry.Resolver, bank bank.Bank) (Engine, error) {
	if feePercent > MaxFeePercent {
		return nil, ErrFeeTooHigh
	}

	return &engine{
		address:    address,
		admin:      admin,
		feePercent: feePercent,
		listings:   make(map[listingKey]entity.Listing),
		proceeds:   make(map[string]uint64),
		registries: registries,
		bank:       bank,
	}, nil
}

// ListItem takes the caller's token into custody and records the listing.
// The custody transfer happens before anything is recorded, so a transfer
// rejected by the registry leaves no trace.
func (e *engine) ListItem(caller, contract string, tokenId, price uint64) error {
	if price == 0 {
		return ErrInvalidPrice
	}

	reg, err := e.registries.Get(contract)
	if err != nil {
		return err
	}

	key := listingKey{contract, tokenId}

	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return ErrPaused
	}
	if _, ok := e.listings[key]; ok {
		e.mu.Unlock()
		return ErrAlreadyListed
	}
	e.mu.Unlock()

	owner, err := reg.OwnerOf(tokenId)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrNotOwner
	}

	if err := reg.Transfer(e.address, caller, e.address, tokenId); err != nil {
		return err
	}

	listing := entity.Listing{Contract: contract, TokenId: tokenId, Price: price, Seller: caller}

	e.mu.Lock()
	// Re-check under the lock: the custody transfer may have re-entered.
	if _, ok := e.listings[key]; ok {
		e.mu.Unlock()
		e.returnToken(reg, caller, tokenId, "list")
		return ErrAlreadyListed
	}
	if e.paused {
		e.mu.Unlock()
		e.returnToken(reg, caller, tokenId, "list")
		return ErrPaused
	}
	e.listings[key] = listing
	e.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", caller),
		zap.Uint64("price", price),
	).Info("Marketplace: item listed")

	event.EmitEvent(event.ItemListedEvent, factory.CreateListingAction(listing))

	return nil
}

func (e *engine) UpdateListing(caller, contract string, tokenId, newPrice uint64) error {
	if newPrice == 0 {
		return ErrInvalidPrice
	}

	key := listingKey{contract, tokenId}

	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return ErrPaused
	}
	listing, ok := e.listings[key]
	if !ok {
		e.mu.Unlock()
		return ErrNotListed
	}
	if listing.Seller != caller {
		e.mu.Unlock()
		return ErrNotOwner
	}
	listing.Price = newPrice
	e.listings[key] = listing
	e.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.Uint64("price", newPrice),
	).Info("Marketplace: listing updated")

	event.EmitEvent(event.ListingUpdatedEvent, factory.CreateListingUpdateAction(listing))

	return nil
}

// CancelListing is deliberately not gated on the pause flag: a seller can
// always pull their token back out of custody.
func (e *engine) CancelListing(caller, contract string, tokenId uint64) error {
	reg, err := e.registries.Get(contract)
	if err != nil {
		return err
	}

	key := listingKey{contract, tokenId}

	e.mu.Lock()
	listing, ok := e.listings[key]
	if !ok {
		e.mu.Unlock()
		return ErrNotListed
	}
	if listing.Seller != caller {
		e.mu.Unlock()
		return ErrNotOwner
	}
	delete(e.listings, key)
	e.mu.Unlock()

	if err := reg.Transfer(e.address, e.address, listing.Seller, tokenId); err != nil {
		e.mu.Lock()
		e.listings[key] = listing
		e.mu.Unlock()
		return err
	}

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", listing.Seller),
	).Info("Marketplace: listing cancelled")

	event.EmitEvent(event.ListingCancelledEvent, factory.CreateDelistingAction(listing))

	return nil
}

// BuyItem settles a sale as one unit. The listing is consumed under the
// lock before any external call, so a transfer that re-enters the engine
// finds the sale already final; the proceeds split is only credited once
// the payment and the token have both moved, so no balance is ever
// withdrawable for a sale that has not settled. The fee uses the percent
// in force now, not at listing time.
func (e *engine) BuyItem(buyer, contract string, tokenId, amount uint64) error {
	reg, err := e.registries.Get(contract)
	if err != nil {
		return err
	}

	key := listingKey{contract, tokenId}

	e.mu.Lock()
	if e.paused {
		e.mu.Unlock()
		return ErrPaused
	}
	listing, ok := e.listings[key]
	if !ok {
		e.mu.Unlock()
		return ErrNotListed
	}
	if amount < listing.Price {
		e.mu.Unlock()
		return ErrPriceNotMet
	}
	delete(e.listings, key)
	e.mu.Unlock()

	relist := func() {
		e.mu.Lock()
		e.listings[key] = listing
		e.mu.Unlock()
	}

	if err := e.bank.Transfer(buyer, e.address, amount); err != nil {
		relist()
		return err
	}

	if excess := amount - listing.Price; excess > 0 {
		if err := e.bank.Transfer(e.address, buyer, excess); err != nil {
			e.refund(buyer, amount)
			relist()
			return err
		}
	}

	if err := reg.Transfer(e.address, e.address, buyer, tokenId); err != nil {
		e.refund(buyer, listing.Price)
		relist()
		return err
	}

	e.mu.Lock()
	fee := feeAmount(listing.Price, e.feePercent)
	e.proceeds[listing.Seller] += listing.Price - fee
	e.proceeds[e.admin] += fee
	e.mu.Unlock()

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("seller", listing.Seller),
		zap.String("buyer", buyer),
		zap.Uint64("price", listing.Price),
		zap.Uint64("fee", fee),
	).Info("Marketplace: item sold")

	event.EmitEvent(event.ItemSoldEvent, factory.CreateSaleAction(listing, buyer, fee))

	return nil
}

// Withdraw pays out the caller's accumulated proceeds in full. The
// balance is zeroed before the money moves; a failed payout credits it
// back rather than overwriting whatever accrued in between.
func (e *engine) Withdraw(caller string) (uint64, error) {
	e.mu.Lock()
	amount := e.proceeds[caller]
	if amount == 0 {
		e.mu.Unlock()
		return 0, ErrNoProceeds
	}
	e.proceeds[caller] = 0
	e.mu.Unlock()

	if err := e.bank.Transfer(e.address, caller, amount); err != nil {
		e.mu.Lock()
		e.proceeds[caller] += amount
		e.mu.Unlock()
		return 0, err
	}

	zap.L().With(
		zap.String("account", caller),
		zap.Uint64("amount", amount),
	).Info("Marketplace: proceeds withdrawn")

	event.EmitEvent(event.ProceedsWithdrawnEvent, factory.CreateWithdrawalAction(caller, amount))

	return amount, nil
}

func (e *engine) SetFeePercent(caller string, feePercent uint) error {
	if feePercent > MaxFeePercent {
		return ErrFeeTooHigh
	}

	e.mu.Lock()
	if caller != e.admin {
		e.mu.Unlock()
		return ErrNotAdmin
	}
	e.feePercent = feePercent
	e.mu.Unlock()

	zap.L().With(zap.Uint("feePercent", feePercent)).Info("Marketplace: fee updated")
	event.EmitEvent(event.FeePercentUpdatedEvent, feePercent)

	return nil
}

func (e *engine) Pause(caller string) error {
	e.mu.Lock()
	if caller != e.admin {
		e.mu.Unlock()
		return ErrNotAdmin
	}
	e.paused = true
	e.mu.Unlock()

	zap.L().Warn("Marketplace: paused")
	event.EmitEvent(event.MarketPausedEvent, caller)

	return nil
}

func (e *engine) Unpause(caller string) error {
	e.mu.Lock()
	if caller != e.admin {
		e.mu.Unlock()
		return ErrNotAdmin
	}
	e.paused = false
	e.mu.Unlock()

	zap.L().Info("Marketplace: unpaused")
	event.EmitEvent(event.MarketUnpausedEvent, caller)

	return nil
}

func (e *engine) TransferAdmin(caller, newAdmin string) error {
	e.mu.Lock()
	if caller != e.admin {
		e.mu.Unlock()
		return ErrNotAdmin
	}
	e.admin = newAdmin
	e.mu.Unlock()

	zap.L().With(zap.String("admin", newAdmin)).Warn("Marketplace: administrator transferred")
	event.EmitEvent(event.AdminTransferredEvent, newAdmin)

	return nil
}

// Recover is the emergency path: administrator-only, works while paused,
// ignores the recorded seller. It exists to unstick custody when a
// registry or counterpart misbehaves, and is always audit-logged.
func (e *engine) Recover(caller, contract string, tokenId uint64, to string) error {
	reg, err := e.registries.Get(contract)
	if err != nil {
		return err
	}

	key := listingKey{contract, tokenId}

	e.mu.Lock()
	if caller != e.admin {
		e.mu.Unlock()
		return ErrNotAdmin
	}
	listing, existed := e.listings[key]
	delete(e.listings, key)
	e.mu.Unlock()

	if err := reg.Transfer(e.address, e.address, to, tokenId); err != nil {
		if existed {
			e.mu.Lock()
			e.listings[key] = listing
			e.mu.Unlock()
		}
		return err
	}

	zap.L().With(
		zap.String("contract", contract),
		zap.Uint64("tokenId", tokenId),
		zap.String("admin", caller),
		zap.String("to", to),
		zap.Bool("wasListed", existed),
	).Warn("Marketplace: emergency recovery")

	event.EmitEvent(event.ItemRecoveredEvent, factory.CreateRecoveryAction(contract, tokenId, caller, to))

	return nil
}

func (e *engine) GetListing(contract string, tokenId uint64) *entity.Listing {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, ok := e.listings[listingKey{contract, tokenId}]
	if !ok {
		return nil
	}

	return &listing
}

func (e *engine) ProceedsOf(account string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.proceeds[account]
}

func (e *engine) FeePercent() uint {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.feePercent
}

func (e *engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.paused
}

func (e *engine) Admin() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.admin
}

func (e *engine) Address() string {
	return e.address
}

// feeAmount is floor(price * percent / 100) computed without the
// intermediate product, which overflows uint64 for very large prices.
func feeAmount(price uint64, percent uint) uint64 {
	return price/100*uint64(percent) + price%100*uint64(percent)/100
}

func (e *engine) refund(account string, amount uint64) {
	if err := e.bank.Transfer(e.address, account, amount); err != nil {
		zap.L().With(
			zap.String("account", account),
			zap.Uint64("amount", amount),
			zap.Error(err),
		).Error("Marketplace: failed to return payment")
	}
}

func (e *engine) returnToken(reg registry.Registry, to string, tokenId uint64, op string) {
	if err := reg.Transfer(e.address, e.address, to, tokenId); err != nil {
		zap.L().With(
			zap.String("contract", reg.Address()),
			zap.Uint64("tokenId", tokenId),
			zap.String("to", to),
			zap.String("op", op),
			zap.Error(err),
		).Error("Marketplace: failed to return token")
	}
}
