package bank

import (
	"errors"
	"sync"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// Bank is the currency-ledger collaborator. The engine treats it the
// way it treats the token registry: commands through the interface,
// no visibility into its internals.
type Bank interface {
	Deposit(account string, amount uint64)
	BalanceOf(account string) uint64
	Transfer(from, to string, amount uint64) error
}

type vault struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewVault() Bank {
	return &vault{balances: make(map[string]uint64)}
}

func (v *vault) Deposit(account string, amount uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.balances[account] += amount
}

func (v *vault) BalanceOf(account string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.balances[account]
}

func (v *vault) Transfer(from, to string, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.balances[from] < amount {
		return ErrInsufficientFunds
	}

	v.balances[from] -= amount
	v.balances[to] += amount

	return nil
}
