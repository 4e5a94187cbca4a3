package bank

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestVault_DepositAndBalance(t *testing.T) {
	vault := NewVault()

	assert.Equal(t, uint64(0), vault.BalanceOf("0xaaaa"))

	vault.Deposit("0xaaaa", 500)
	vault.Deposit("0xaaaa", 250)

	assert.Equal(t, uint64(750), vault.BalanceOf("0xaaaa"))
}

func TestVault_Transfer(t *testing.T) {
	vault := NewVault()
	vault.Deposit("0xaaaa", 1000)

	err := vault.Transfer("0xaaaa", "0xbbbb", 400)

	assert.NoError(t, err)
	assert.Equal(t, uint64(600), vault.BalanceOf("0xaaaa"))
	assert.Equal(t, uint64(400), vault.BalanceOf("0xbbbb"))
}

func TestVault_TransferInsufficientFunds(t *testing.T) {
	vault := NewVault()
	vault.Deposit("0xaaaa", 100)

	err := vault.Transfer("0xaaaa", "0xbbbb", 101)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, uint64(100), vault.BalanceOf("0xaaaa"))
	assert.Equal(t, uint64(0), vault.BalanceOf("0xbbbb"))
}
