package registry

import (
	"errors"
	"github.com/sevenong/nft-marketplace/internal/entity"
	"github.com/sevenong/nft-marketplace/internal/event"
	"github.com/sevenong/nft-marketplace/internal/factory"
	"go.uber.org/zap"
	"sync"
	"time"
)

var (
	ErrUnknownToken     = errors.New("unknown token")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotContractOwner = errors.New("not the contract owner")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrIndexOutOfRange  = errors.New("index out of range")
)

// Registry is the token-ownership collaborator. It is the single source
// of truth for who owns a token; the marketplace engine only ever talks
// to it through this interface.
type Registry interface {
	Address() string
	Name() string
	Symbol() string
	Owner() string

	OwnerOf(tokenId uint64) (string, error)
	MetadataOf(tokenId uint64) (string, error)
	GetToken(tokenId uint64) (*entity.Token, error)

	Mint(caller, to, tokenUri, mediaType string) (uint64, error)
	Transfer(caller, from, to string, tokenId uint64) error

	SetApprovalForAll(owner, operator string, approved bool)
	IsApprovedForAll(owner, operator string) bool

	TotalSupply() uint64
	BalanceOf(owner string) uint64
	TokenByIndex(index uint64) (uint64, error)
	TokenOfOwnerByIndex(owner string, index uint64) (uint64, error)

	TransferOwnership(caller, newOwner string) error
}

type tokenRegistry struct {
	mu sync.RWMutex

	address string
	name    string
	symbol  string
	owner   string

	nextTokenId uint64
	tokens      map[uint64]*entity.Token
	tokenIds    []uint64
	operators   map[string]map[string]bool
}

func NewTokenRegistry(address, name, symbol, owner string) Registry {
	return &tokenRegistry{
		address:   address,
		name:      name,
		symbol:    symbol,
		owner:     owner,
		tokens:    make(map[uint64]*entity.Token),
		tokenIds:  make([]uint64, 0),
		operators: make(map[string]map[string]bool),
	}
}

func (r *tokenRegistry) Address() string {
	return r.address
}

func (r *tokenRegistry) Name() string {
	return r.name
}

func (r *tokenRegistry) Symbol() string {
	return r.symbol
}

func (r *tokenRegistry) Owner() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.owner
}

func (r *tokenRegistry) OwnerOf(tokenId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return "", ErrUnknownToken
	}

	return token.Owner, nil
}

func (r *tokenRegistry) MetadataOf(tokenId uint64) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return "", ErrUnknownToken
	}

	return token.TokenUri, nil
}

func (r *tokenRegistry) GetToken(tokenId uint64) (*entity.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.tokens[tokenId]
	if !ok {
		return nil, ErrUnknownToken
	}

	t := *token

	return &t, nil
}

// Mint issues the next sequential token id to the recipient. Issuance is
// gated on the collection owner.
func (r *tokenRegistry) Mint(caller, to, tokenUri, mediaType string) (uint64, error) {
	if to == "" {
		return 0, ErrInvalidRecipient
	}

	r.mu.Lock()
	if caller != r.owner {
		r.mu.Unlock()
		return 0, ErrNotContractOwner
	}

	tokenId := r.nextTokenId
	r.nextTokenId++

	token := &entity.Token{
		Contract:  r.address,
		TokenId:   tokenId,
		Owner:     to,
		TokenUri:  tokenUri,
		MediaType: mediaType,
		MintedAt:  time.Now().UTC(),
	}
	r.tokens[tokenId] = token
	r.tokenIds = append(r.tokenIds, tokenId)
	r.mu.Unlock()

	zap.L().With(
		zap.String("contract", r.address),
		zap.Uint64("tokenId", tokenId),
		zap.String("to", to),
		zap.String("mediaType", mediaType),
	).Info("Registry: token minted")

	event.EmitEvent(event.TokenMintedEvent, factory.CreateMintAction(*token))

	return tokenId, nil
}

// Transfer moves a token between accounts. The caller must be the
// current holder or an operator the holder approved.
func (r *tokenRegistry) Transfer(caller, from, to string, tokenId uint64) error {
	if to == "" {
		return ErrInvalidRecipient
	}

	r.mu.Lock()
	token, ok := r.tokens[tokenId]
	if !ok {
		r.mu.Unlock()
		return ErrUnknownToken
	}

	if token.Owner != from {
		r.mu.Unlock()
		return ErrNotAuthorized
	}

	if caller != from && !r.approved(from, caller) {
		r.mu.Unlock()
		return ErrNotAuthorized
	}

	token.Owner = to
	moved := *token
	r.mu.Unlock()

	zap.L().With(
		zap.String("contract", r.address),
		zap.Uint64("tokenId", tokenId),
		zap.String("from", from),
		zap.String("to", to),
	).Info("Registry: token transferred")

	event.EmitEvent(event.TokenTransferredEvent, factory.CreateTransferAction(moved, from, to))

	return nil
}

func (r *tokenRegistry) SetApprovalForAll(owner, operator string, approved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.operators[owner] == nil {
		r.operators[owner] = make(map[string]bool)
	}
	r.operators[owner][operator] = approved
}

func (r *tokenRegistry) IsApprovedForAll(owner, operator string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.approved(owner, operator)
}

func (r *tokenRegistry) approved(owner, operator string) bool {
	ops, ok := r.operators[owner]

	return ok && ops[operator]
}

func (r *tokenRegistry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return uint64(len(r.tokenIds))
}

func (r *tokenRegistry) BalanceOf(owner string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var balance uint64
	for _, token := range r.tokens {
		if token.Owner == owner {
			balance++
		}
	}

	return balance
}

func (r *tokenRegistry) TokenByIndex(index uint64) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= uint64(len(r.tokenIds)) {
		return 0, ErrIndexOutOfRange
	}

	return r.tokenIds[index], nil
}

func (r *tokenRegistry) TokenOfOwnerByIndex(owner string, index uint64) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var i uint64
	for _, tokenId := range r.tokenIds {
		if r.tokens[tokenId].Owner != owner {
			continue
		}
		if i == index {
			return tokenId, nil
		}
		i++
	}

	return 0, ErrIndexOutOfRange
}

func (r *tokenRegistry) TransferOwnership(caller, newOwner string) error {
	if newOwner == "" {
		return ErrInvalidRecipient
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.owner {
		return ErrNotContractOwner
	}
	r.owner = newOwner

	return nil
}
