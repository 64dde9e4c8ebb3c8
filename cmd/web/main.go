package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Christian103103/HSemulator/internal/config"
	"github.com/Christian103103/HSemulator/internal/web"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to TOML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	tcpAddr := flag.String("tcp", "", "game host the websocket bridge dials (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	zl, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()

	if *addr != "" {
		cfg.Web.Addr = *addr
	}
	if *tcpAddr != "" {
		cfg.Web.TCPAddr = *tcpAddr
	}
	mc, err := cfg.MatchConfig()
	if err != nil {
		zl.Fatal("load match config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(cfg.Web, mc, zl)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Error("web server stopped", zap.Error(err))
		os.Exit(1)
	}
}
