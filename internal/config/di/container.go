package di

import (
	"github.com/sarulabs/di/v2"
	"github.com/sevenong/nft-marketplace/internal/api"
	"github.com/sevenong/nft-marketplace/internal/audit"
	"github.com/sevenong/nft-marketplace/internal/bank"
	"github.com/sevenong/nft-marketplace/internal/elastic_search"
	"github.com/sevenong/nft-marketplace/internal/marketplace"
	"github.com/sevenong/nft-marketplace/internal/messenger"
	"github.com/sevenong/nft-marketplace/internal/metadata"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"github.com/sevenong/nft-marketplace/internal/repository"
)

type Container struct {
	ctn di.Container
}

func NewContainer() (*Container, error) {
	builder, err := di.NewBuilder()
	if err != nil {
		return nil, err
	}

	if err := builder.Add(Definitions...); err != nil {
		return nil, err
	}

	return &Container{ctn: builder.Build()}, nil
}

func (c *Container) GetElastic() elastic_search.Index {
	return c.ctn.Get("elastic").(elastic_search.Index)
}

func (c *Container) GetBank() bank.Bank {
	return c.ctn.Get("bank").(bank.Bank)
}

func (c *Container) GetRegistries() registry.Resolver {
	return c.ctn.Get("registries").(registry.Resolver)
}

func (c *Container) GetEngine() marketplace.Engine {
	return c.ctn.Get("engine").(marketplace.Engine)
}

func (c *Container) GetMetadata() metadata.Service {
	return c.ctn.Get("metadata").(metadata.Service)
}

func (c *Container) GetAudit() audit.Indexer {
	return c.ctn.Get("audit").(audit.Indexer)
}

func (c *Container) GetMessenger() messenger.MessageService {
	return c.ctn.Get("messenger").(messenger.MessageService)
}

func (c *Container) GetMarketActionRepo() repository.MarketActionRepository {
	return c.ctn.Get("market_action.repo").(repository.MarketActionRepository)
}

func (c *Container) GetApi() api.Server {
	return c.ctn.Get("api").(api.Server)
}
