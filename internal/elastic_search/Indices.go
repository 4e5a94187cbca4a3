package elastic_search

import (
	"fmt"
	"github.com/sevenong/nft-marketplace/internal/config"
)

type Indices string

var (
	MarketActionIndex Indices = "marketaction"
	TokenIndex        Indices = "token"
)

// Prefixes the network and index name and returns the full string
func (i *Indices) Get() string {
	return fmt.Sprintf("%s.%s.%s", config.Get().Network, config.Get().Index, string(*i))
}
