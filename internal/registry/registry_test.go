package registry

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

const (
	contract = "0x0000000000000000000000000000000000007049"
	owner    = "0x000000000000000000000000000000000admin1"
	alice    = "0x000000000000000000000000000000000a11ce1"
	bob      = "0x0000000000000000000000000000000000b0b01"
)

func newRegistry() Registry {
	return NewTokenRegistry(contract, "7ONG COLLECTION", "7ONG", owner)
}

func TestTokenRegistry_MintSequentialIds(t *testing.T) {
	reg := newRegistry()

	first, err := reg.Mint(owner, alice, "ipfs://QmFirst", "image/png")
	require.NoError(t, err)

	second, err := reg.Mint(owner, bob, "ipfs://QmSecond", "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), first)
	assert.Equal(t, uint64(1), second)
	assert.Equal(t, uint64(2), reg.TotalSupply())
}

func TestTokenRegistry_MintRequiresContractOwner(t *testing.T) {
	reg := newRegistry()

	_, err := reg.Mint(alice, alice, "ipfs://QmNope", "image/png")

	assert.ErrorIs(t, err, ErrNotContractOwner)
	assert.Equal(t, uint64(0), reg.TotalSupply())
}

func TestTokenRegistry_MintRejectsEmptyRecipient(t *testing.T) {
	reg := newRegistry()

	_, err := reg.Mint(owner, "", "ipfs://QmNope", "image/png")

	assert.ErrorIs(t, err, ErrInvalidRecipient)
}

func TestTokenRegistry_TransferByOwner(t *testing.T) {
	reg := newRegistry()
	tokenId, _ := reg.Mint(owner, alice, "ipfs://QmToken", "image/png")

	require.NoError(t, reg.Transfer(alice, alice, bob, tokenId))

	holder, err := reg.OwnerOf(tokenId)
	require.NoError(t, err)
	assert.Equal(t, bob, holder)
}

func TestTokenRegistry_TransferByOperator(t *testing.T) {
	reg := newRegistry()
	tokenId, _ := reg.Mint(owner, alice, "ipfs://QmToken", "image/png")

	operator := "0x00000000000000000000000000000000006f701"
	reg.SetApprovalForAll(alice, operator, true)
	assert.True(t, reg.IsApprovedForAll(alice, operator))

	require.NoError(t, reg.Transfer(operator, alice, bob, tokenId))

	holder, _ := reg.OwnerOf(tokenId)
	assert.Equal(t, bob, holder)
}

func TestTokenRegistry_TransferByStrangerRejected(t *testing.T) {
	reg := newRegistry()
	tokenId, _ := reg.Mint(owner, alice, "ipfs://QmToken", "image/png")

	err := reg.Transfer(bob, alice, bob, tokenId)

	assert.ErrorIs(t, err, ErrNotAuthorized)

	holder, _ := reg.OwnerOf(tokenId)
	assert.Equal(t, alice, holder)
}

func TestTokenRegistry_TransferRevokedOperatorRejected(t *testing.T) {
	reg := newRegistry()
	tokenId, _ := reg.Mint(owner, alice, "ipfs://QmToken", "image/png")

	operator := "0x00000000000000000000000000000000006f701"
	reg.SetApprovalForAll(alice, operator, true)
	reg.SetApprovalForAll(alice, operator, false)

	err := reg.Transfer(operator, alice, bob, tokenId)

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestTokenRegistry_TransferUnknownToken(t *testing.T) {
	reg := newRegistry()

	err := reg.Transfer(alice, alice, bob, 42)

	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestTokenRegistry_Enumeration(t *testing.T) {
	reg := newRegistry()
	reg.Mint(owner, alice, "ipfs://Qm0", "image/png")
	reg.Mint(owner, bob, "ipfs://Qm1", "image/png")
	reg.Mint(owner, alice, "ipfs://Qm2", "image/png")

	assert.Equal(t, uint64(2), reg.BalanceOf(alice))
	assert.Equal(t, uint64(1), reg.BalanceOf(bob))

	tokenId, err := reg.TokenByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), tokenId)

	tokenId, err = reg.TokenOfOwnerByIndex(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), tokenId)

	_, err = reg.TokenByIndex(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = reg.TokenOfOwnerByIndex(bob, 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTokenRegistry_TransferOwnership(t *testing.T) {
	reg := newRegistry()

	assert.ErrorIs(t, reg.TransferOwnership(alice, alice), ErrNotContractOwner)
	assert.ErrorIs(t, reg.TransferOwnership(owner, ""), ErrInvalidRecipient)

	require.NoError(t, reg.TransferOwnership(owner, alice))
	assert.Equal(t, alice, reg.Owner())

	_, err := reg.Mint(owner, bob, "ipfs://QmNope", "image/png")
	assert.ErrorIs(t, err, ErrNotContractOwner)

	_, err = reg.Mint(alice, bob, "ipfs://QmYes", "image/png")
	assert.NoError(t, err)
}

func TestResolver(t *testing.T) {
	reg := newRegistry()
	resolver := NewResolver(reg)

	found, err := resolver.Get(contract)
	require.NoError(t, err)
	assert.Equal(t, reg, found)

	_, err = resolver.Get("0xunknown")
	assert.ErrorIs(t, err, ErrUnknownRegistry)

	other := NewTokenRegistry("0xother", "OTHER", "OTH", owner)
	resolver.Add(other)

	assert.ElementsMatch(t, []string{contract, "0xother"}, resolver.Contracts())
}
