package httpserver

import (
	"net/http"
	"time"

	"roomies-go/internal/config"
)

// New builds the http.Server. Per-request deadlines come from the router's
// timeout middleware; the server-level timeouts guard slow clients.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
