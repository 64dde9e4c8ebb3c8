package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Christian103103/HSemulator/internal/config"
	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	hsnet "github.com/Christian103103/HSemulator/internal/net"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "sim":
		err = runSim(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  hsemu host [--config FILE] [--port P] [--seed N]")
	fmt.Println("  hsemu join [--addr ADDR] [--name NAME]")
	fmt.Println("  hsemu sim  [--config FILE] [--seed N] [--games N] [--quiet]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a game server and play as Player 1")
	fmt.Println("  join    Connect to a game server and play as Player 2")
	fmt.Println("  sim     Play bot against bot and print the combat log")
}

// setup loads the config file and builds the process logger.
func setup(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, nil, err
	}
	zl, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, zl, nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to TOML config file")
	port := fs.Int("port", 0, "TCP port to listen on (overrides config)")
	seed := fs.Int64("seed", 0, "RNG seed (overrides config)")
	fs.Parse(args)

	cfg, zl, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer zl.Sync()

	mc, err := cfg.MatchConfig()
	if err != nil {
		return err
	}
	if *seed != 0 {
		mc.Seed = *seed
	}
	p := cfg.Server.Port
	if *port != 0 {
		p = *port
	}

	srv := &hsnet.Server{
		Port:  strconv.Itoa(p),
		Match: mc,
		Log:   zl,
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9999", "server address to connect to")
	name := fs.String("name", "Player 2", "name shown to the host")
	fs.Parse(args)

	return hsnet.Connect(ctx, *addr, *name)
}

func runSim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to TOML config file")
	seed := fs.Int64("seed", 0, "RNG seed of the first game (overrides config)")
	games := fs.Int("games", 1, "number of games to play")
	quiet := fs.Bool("quiet", false, "print only results, not the event log")
	fs.Parse(args)

	cfg, zl, err := setup(*cfgPath)
	if err != nil {
		return err
	}
	defer zl.Sync()

	mc, err := cfg.MatchConfig()
	if err != nil {
		return err
	}
	if *seed != 0 {
		mc.Seed = *seed
	}
	mc.Log = zl

	var wins [3]int // P1, P2, draws
	for i := 0; i < *games; i++ {
		run := mc
		if run.Seed != 0 {
			run.Seed = mc.Seed + int64(i)
		}
		if *quiet {
			run.Logger = log.NewMemoryLogger()
		} else {
			run.Logger = log.NewTextLogger(os.Stdout)
		}

		m, err := game.NewMatch(run, game.NewGreedyController(), game.NewGreedyController())
		if err != nil {
			return err
		}
		winner, err := m.Run(ctx)
		if err != nil {
			return err
		}
		gs := m.State()
		fmt.Printf("Game %d (%s): %s after %d turns [%d - %d]\n",
			i+1, m.Session.GameID, gs.Result, gs.Turn, gs.Players[0].Health, gs.Players[1].Health)
		if winner < 0 {
			wins[2]++
		} else {
			wins[winner]++
		}
	}
	if *games > 1 {
		fmt.Printf("Player 1: %d  Player 2: %d  Draws: %d\n", wins[0], wins[1], wins[2])
	}
	return nil
}
