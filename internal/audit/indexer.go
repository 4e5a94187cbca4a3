package audit

import (
	"github.com/sevenong/nft-marketplace/internal/dev"
	"github.com/sevenong/nft-marketplace/internal/elastic_search"
	"github.com/sevenong/nft-marketplace/internal/entity"
	"github.com/sevenong/nft-marketplace/internal/event"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"go.uber.org/zap"
)

// Indexer turns marketplace and registry events into elastic documents:
// one MarketAction per state change, plus the current Token record
// whenever ownership moves. It only ever appends; nothing in the engine
// reads it back.
type Indexer interface {
	Subscribe()
	Persist()
}

type indexer struct {
	elastic    elastic_search.Index
	registries registry.Resolver
}

func NewIndexer(elastic elastic_search.Index, registries registry.Resolver) Indexer {
	return indexer{elastic, registries}
}

func (i indexer) Subscribe() {
	for _, eventType := range event.AuditedTypes {
		event.AddEventListener(eventType, i.indexAction)
	}
}

func (i indexer) Persist() {
	i.elastic.Persist()
}

func (i indexer) indexAction(msg interface{}) {
	action, ok := msg.(entity.MarketAction)
	if !ok {
		zap.L().Warn("Audit: unexpected event payload")
		return
	}

	zap.L().With(
		zap.String("contract", action.Contract),
		zap.Uint64("tokenId", action.TokenId),
		zap.String("action", string(action.Action)),
	).Debug("Audit: indexing action")
	dev.Dump(action)

	i.elastic.AddIndexRequest(elastic_search.MarketActionIndex.Get(), action)

	switch action.Action {
	case entity.MintAction, entity.TransferAction, entity.SaleAction, entity.RecoveryAction:
		i.indexToken(action.Contract, action.TokenId)
	}

	i.elastic.BatchPersist()
}

func (i indexer) indexToken(contract string, tokenId uint64) {
	reg, err := i.registries.Get(contract)
	if err != nil {
		zap.L().With(zap.String("contract", contract), zap.Error(err)).Warn("Audit: unknown registry")
		return
	}

	token, err := reg.GetToken(tokenId)
	if err != nil {
		zap.L().With(
			zap.String("contract", contract),
			zap.Uint64("tokenId", tokenId),
			zap.Error(err),
		).Warn("Audit: token not found")
		return
	}

	i.elastic.AddIndexRequest(elastic_search.TokenIndex.Get(), *token)
}
