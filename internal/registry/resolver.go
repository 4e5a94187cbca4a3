package registry

import (
	"errors"
	"sync"
)

var ErrUnknownRegistry = errors.New("unknown registry")

// Resolver maps a collection contract address to its Registry. The
// engine never holds registries directly; everything goes through here.
type Resolver interface {
	Add(reg Registry)
	Get(contract string) (Registry, error)
	Contracts() []string
}

type resolver struct {
	mu         sync.RWMutex
	registries map[string]Registry
}

func NewResolver(registries ...Registry) Resolver {
	r := &resolver{registries: make(map[string]Registry)}
	for _, reg := range registries {
		r.registries[reg.Address()] = reg
	}

	return r
}

func (r *resolver) Add(reg Registry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.registries[reg.Address()] = reg
}

func (r *resolver) Get(contract string) (Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registries[contract]
	if !ok {
		return nil, ErrUnknownRegistry
	}

	return reg, nil
}

func (r *resolver) Contracts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contracts := make([]string, 0, len(r.registries))
	for contract := range r.registries {
		contracts = append(contracts, contract)
	}

	return contracts
}
