package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Christian103103/HSemulator/internal/config"
	hsmcp "github.com/Christian103103/HSemulator/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	cfgPath := flag.String("config", "", "path to TOML config file")
	port := flag.Int("port", 0, "TCP port for human player connection (overrides config)")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the MCP stream; logs go to stderr only.
	zl, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer zl.Sync()

	mc, err := cfg.MatchConfig()
	if err != nil {
		zl.Fatal("load match config", zap.Error(err))
	}
	mc.Log = zl

	p := cfg.Server.Port
	if *port != 0 {
		p = *port
	}

	s := server.NewMCPServer("hsemu", "1.0.0")
	hsmcp.RegisterTools(s, &hsmcp.Tools{Match: mc, Port: strconv.Itoa(p)})

	if err := server.ServeStdio(s); err != nil {
		zl.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
