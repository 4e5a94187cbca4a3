package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/sevenong/nft-marketplace/internal/marketplace"
	"github.com/sevenong/nft-marketplace/internal/metadata"
	"github.com/sevenong/nft-marketplace/internal/registry"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

// Server exposes the engine's read surface. All writes go through the
// engine api directly; nothing here mutates state.
type Server struct {
	engine          marketplace.Engine
	registries      registry.Resolver
	metadataService metadata.Service
}

func NewServer(engine marketplace.Engine, registries registry.Resolver, metadataService metadata.Service) Server {
	return Server{engine, registries, metadataService}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/proceeds/{account}", s.handleGetProceeds).Methods("GET")
	r.HandleFunc("/fee", s.handleGetFee).Methods("GET")
	r.HandleFunc("/paused", s.handleGetPaused).Methods("GET")
	r.HandleFunc("/tokens/{contract}/{tokenId}", s.handleGetToken).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "7ONG Marketplace")
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, err := tokenParams(r)
	if err != nil {
		http.Error(w, "Invalid parameters", http.StatusBadRequest)
		return
	}

	listing := s.engine.GetListing(contract, tokenId)
	if listing == nil {
		http.Error(w, "Not listed", http.StatusNotFound)
		return
	}

	writeJson(w, listing)
}

func (s Server) handleGetProceeds(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]

	writeJson(w, map[string]interface{}{
		"account":  account,
		"proceeds": s.engine.ProceedsOf(account),
	})
}

func (s Server) handleGetFee(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]interface{}{"feePercent": s.engine.FeePercent()})
}

func (s Server) handleGetPaused(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]interface{}{"paused": s.engine.IsPaused()})
}

func (s Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, err := tokenParams(r)
	if err != nil {
		http.Error(w, "Invalid parameters", http.StatusBadRequest)
		return
	}

	reg, err := s.registries.Get(contract)
	if err != nil {
		http.Error(w, "Unknown collection", http.StatusNotFound)
		return
	}

	token, err := reg.GetToken(tokenId)
	if err != nil {
		http.Error(w, "Token not available", http.StatusNotFound)
		return
	}

	response := map[string]interface{}{"token": token}

	if s.metadataService != nil {
		md, err := s.metadataService.FetchMetadata(reg, tokenId)
		if err != nil {
			zap.L().With(
				zap.String("contract", contract),
				zap.Uint64("tokenId", tokenId),
				zap.Error(err),
			).Debug("Api: metadata not available")
		} else {
			response["metadata"] = md
		}
	}

	writeJson(w, response)
}

func tokenParams(r *http.Request) (string, uint64, error) {
	contract, ok := mux.Vars(r)["contract"]
	if !ok {
		return "", 0, errors.New("invalid parameters")
	}

	tokenId, err := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)

	return contract, tokenId, err
}

func writeJson(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("Api: failed to write response")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = fmt.Fprintf(w, "Page not found")
	})
}
