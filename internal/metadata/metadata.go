package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sevenong/nft-marketplace/internal/config"
	"github.com/sevenong/nft-marketplace/internal/helper"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"go.uber.org/zap"
	"time"
)

var ErrNoMetadata = errors.New("no metadata available")

// Service resolves a token's metadata document from its token uri,
// rewriting ipfs uris through the configured gateways.
type Service interface {
	FetchMetadata(reg registry.Registry, tokenId uint64) (map[string]interface{}, error)
}

type service struct {
	client *retryablehttp.Client
}

func NewMetadataService(client *retryablehttp.Client) Service {
	return service{client}
}

func NewRetryableClient() *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = config.Get().MetadataRetries
	client.HTTPClient.Timeout = time.Duration(config.Get().IpfsTimeout) * time.Second
	client.Logger = nil

	return client
}

func (s service) FetchMetadata(reg registry.Registry, tokenId uint64) (map[string]interface{}, error) {
	tokenUri, err := reg.MetadataOf(tokenId)
	if err != nil {
		return nil, err
	}

	if tokenUri == "" {
		return nil, ErrNoMetadata
	}

	if helper.IsIpfs(tokenUri) {
		return s.fetchIpfs(tokenUri)
	}

	if !helper.IsUrl(tokenUri) {
		return nil, ErrNoMetadata
	}

	return s.fetch(tokenUri)
}

func (s service) fetchIpfs(tokenUri string) (map[string]interface{}, error) {
	var lastErr error
	for _, gateway := range config.Get().IpfsHosts {
		md, err := s.fetch(helper.GatewayUri(tokenUri, gateway))
		if err == nil {
			return md, nil
		}

		zap.L().With(zap.String("gateway", gateway), zap.Error(err)).Debug("Metadata: ipfs gateway failed")
		lastErr = err
	}

	return nil, lastErr
}

func (s service) fetch(uri string) (map[string]interface{}, error) {
	resp, err := s.client.Get(uri)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("metadata fetch: %s", resp.Status)
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}

	var md map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &md); err != nil {
		return nil, err
	}

	return md, nil
}
