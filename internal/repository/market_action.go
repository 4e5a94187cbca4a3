package repository

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/olivere/elastic/v7"
	"github.com/sevenong/nft-marketplace/internal/elastic_search"
	"github.com/sevenong/nft-marketplace/internal/entity"
	"go.uber.org/zap"
	"time"
)

var ErrMarketActionNotFound = errors.New("market action not found")

type MarketActionRepository interface {
	GetActionsByToken(contract string, tokenId uint64, size, page int) ([]entity.MarketAction, int64, error)
	GetSalesByContract(contract string, size, page int) ([]entity.MarketAction, int64, error)
	GetLatestAction(contract string, tokenId uint64) (*entity.MarketAction, error)
}

type marketActionRepository struct {
	elastic elastic_search.Index
}

func NewMarketActionRepository(elastic elastic_search.Index) MarketActionRepository {
	return marketActionRepository{elastic}
}

func (r marketActionRepository) GetActionsByToken(contract string, tokenId uint64, size, page int) ([]entity.MarketAction, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("contract.keyword", contract),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := r.execute(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("timestamp", false).
		Size(size).
		From((page - 1) * size))

	return r.findMany(result, err)
}

func (r marketActionRepository) GetSalesByContract(contract string, size, page int) ([]entity.MarketAction, int64, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("contract.keyword", contract),
		elastic.NewTermQuery("action.keyword", string(entity.SaleAction)),
	)

	result, err := r.execute(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("timestamp", false).
		Size(size).
		From((page - 1) * size))

	return r.findMany(result, err)
}

func (r marketActionRepository) GetLatestAction(contract string, tokenId uint64) (*entity.MarketAction, error) {
	query := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("contract.keyword", contract),
		elastic.NewTermQuery("tokenId", tokenId),
	)

	result, err := r.execute(r.elastic.GetClient().
		Search(elastic_search.MarketActionIndex.Get()).
		Query(query).
		Sort("timestamp", false).
		Size(1))

	return r.findOne(result, err)
}

// execute runs the search, backing off and retrying while elastic
// throttles us.
func (r marketActionRepository) execute(searchService *elastic.SearchService) (*elastic.SearchResult, error) {
	result, err := searchService.Do(context.Background())
	for err != nil && err.Error() == "elastic: Error 429 (Too Many Requests)" {
		zap.L().Warn("Repository: elastic throttled, retrying")
		time.Sleep(5 * time.Second)

		result, err = searchService.Do(context.Background())
	}

	return result, err
}

func (r marketActionRepository) findOne(results *elastic.SearchResult, err error) (*entity.MarketAction, error) {
	if err != nil {
		return nil, err
	}

	if len(results.Hits.Hits) == 0 {
		return nil, ErrMarketActionNotFound
	}

	var action entity.MarketAction
	hit := results.Hits.Hits[0]
	err = json.Unmarshal(hit.Source, &action)

	return &action, err
}

func (r marketActionRepository) findMany(results *elastic.SearchResult, err error) ([]entity.MarketAction, int64, error) {
	actions := make([]entity.MarketAction, 0)

	if err != nil {
		return actions, 0, err
	}

	for _, hit := range results.Hits.Hits {
		var action entity.MarketAction
		if err := json.Unmarshal(hit.Source, &action); err == nil {
			actions = append(actions, action)
		}
	}

	return actions, results.TotalHits(), nil
}
