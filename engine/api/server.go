package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/arktech/studydao/module"
)

// NewServer returns an HTTP server initialized with the REST API handler
func NewServer(backend Backend, listenAddress string, logger zerolog.Logger, restCollector module.RestMetrics) *http.Server {
	router := NewRouter(backend, logger.With().Str("component", "rest_api").Logger(), restCollector)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
			http.MethodHead},
	})

	return &http.Server{
		Addr:    listenAddress,
		Handler: c.Handler(router),
		// verification blocks until the transaction is confirmed
		WriteTimeout: time.Minute * 5,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
}
