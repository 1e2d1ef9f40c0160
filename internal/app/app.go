package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmviz/kestrel/internal/conf"
)

// NewHTTPServer wires the application graph and wraps the resulting handler
// in an http.Server listening on the configured port. The returned cleanup
// must run on shutdown.
func NewHTTPServer(bc *conf.Bootstrap, log *slog.Logger) (*http.Server, func(), error) {
	handler, cleanup, err := wireApp(bc, log)
	if err != nil {
		return nil, nil, err
	}
	svr := http.Server{
		Addr:              fmt.Sprintf(":%d", bc.Server.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &svr, cleanup, nil
}
