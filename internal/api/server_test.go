package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sevenong/nft-marketplace/internal/bank"
	"github.com/sevenong/nft-marketplace/internal/marketplace"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	marketAddr = "0x00000000000000000000000000000000004d6b74"
	contract   = "0x0000000000000000000000000000000000007049"
	admin      = "0x000000000000000000000000000000000admin1"
	seller     = "0x00000000000000000000000000000073656c6c1"
)

func newTestServer(t *testing.T) (Server, marketplace.Engine, registry.Registry) {
	reg := registry.NewTokenRegistry(contract, "7ONG COLLECTION", "7ONG", admin)
	registries := registry.NewResolver(reg)

	engine, err := marketplace.NewEngine(marketAddr, admin, 2, registries, bank.NewVault())
	require.NoError(t, err)

	return NewServer(engine, registries, nil), engine, reg
}

func get(server Server, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, httptest.NewRequest("GET", target, nil))

	return recorder
}

func TestServer_GetListing(t *testing.T) {
	server, engine, reg := newTestServer(t)

	tokenId, err := reg.Mint(admin, seller, "ipfs://QmToken", "image/png")
	require.NoError(t, err)
	reg.SetApprovalForAll(seller, marketAddr, true)
	require.NoError(t, engine.ListItem(seller, contract, tokenId, 1000))

	resp := get(server, "/listings/"+contract+"/0")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(1000), body["price"])
	assert.Equal(t, seller, body["seller"])
}

func TestServer_GetListingNotFound(t *testing.T) {
	server, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(server, "/listings/"+contract+"/42").Code)
}

func TestServer_GetListingBadTokenId(t *testing.T) {
	server, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, get(server, "/listings/"+contract+"/notanumber").Code)
}

func TestServer_GetProceeds(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := get(server, "/proceeds/"+seller)
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["proceeds"])
	assert.Equal(t, seller, body["account"])
}

func TestServer_GetFee(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := get(server, "/fee")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["feePercent"])
}

func TestServer_GetPaused(t *testing.T) {
	server, engine, _ := newTestServer(t)
	require.NoError(t, engine.Pause(admin))

	resp := get(server, "/paused")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, true, body["paused"])
}

func TestServer_GetToken(t *testing.T) {
	server, _, reg := newTestServer(t)

	_, err := reg.Mint(admin, seller, "ipfs://QmToken", "image/png")
	require.NoError(t, err)

	resp := get(server, "/tokens/"+contract+"/0")
	require.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	token := body["token"].(map[string]interface{})
	assert.Equal(t, seller, token["owner"])
	assert.Equal(t, "ipfs://QmToken", token["tokenUri"])
}

func TestServer_GetTokenUnknownCollection(t *testing.T) {
	server, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(server, "/tokens/0xunknown/0").Code)
}

func TestServer_GetTokenUnknownToken(t *testing.T) {
	server, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(server, "/tokens/"+contract+"/42").Code)
}

func TestServer_NotFound(t *testing.T) {
	server, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, get(server, "/nope").Code)
}
