package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ixugo/goddd/pkg/system"
	"github.com/tmviz/kestrel/internal/app"
	"github.com/tmviz/kestrel/internal/conf"
)

// version is stamped by the build via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var confPath string
	flag.StringVar(&confPath, "conf", filepath.Join(system.Getwd(), "configs", "config.toml"), "config file path")
	flag.Parse()

	bc, err := conf.SetupConfig(confPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	bc.BuildVersion = version

	log := setupLogger(bc)

	svr, cleanup, err := app.NewHTTPServer(bc, log)
	if err != nil {
		slog.Error("bootstrap", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	go func() {
		if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen", "err", err)
			os.Exit(1)
		}
	}()
	slog.Info("server started", "addr", svr.Addr, "version", version)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svr.Shutdown(ctx); err != nil {
		slog.Warn("shutdown", "err", err)
	}
	slog.Info("server stopped")
}

func setupLogger(bc *conf.Bootstrap) *slog.Logger {
	level := slog.LevelInfo
	if bc.Server.Debug {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if bc.Server.Debug {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
