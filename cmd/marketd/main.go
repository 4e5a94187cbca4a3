package main

import (
	"fmt"
	"github.com/gorilla/mux"
	"github.com/sevenong/nft-marketplace/internal/config"
	"github.com/sevenong/nft-marketplace/internal/config/di"
	"go.uber.org/zap"
	"net/http"
)

var container *di.Container

func main() {
	config.Init("marketd")

	var err error
	container, err = di.NewContainer()
	if err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to build container")
	}

	container.GetElastic().InstallMappings()
	container.GetAudit().Subscribe()

	if config.Get().AmqpUri != "" {
		container.GetMessenger().Subscribe()
	}

	go health()

	zap.L().With(zap.String("port", config.Get().ApiPort)).Info("Marketd Started")

	if err := http.ListenAndServe(":"+config.Get().ApiPort, container.GetApi().Router()); err != nil {
		zap.L().With(zap.Error(err)).Fatal("Failed to start api")
	}
}

func health() {
	if err := http.ListenAndServe(":"+config.Get().HealthPort, router()); err != nil {
		zap.L().With(zap.Error(err)).Error("Failed to start health check")
	}
}

func router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "OK")
	}).Methods("GET")

	return r
}
