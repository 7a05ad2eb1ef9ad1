package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuboktahedron/tetsimu2-hub/config"
	"github.com/cuboktahedron/tetsimu2-hub/internal/cli"
	"github.com/cuboktahedron/tetsimu2-hub/internal/logging"
	"github.com/cuboktahedron/tetsimu2-hub/internal/server"
	"github.com/cuboktahedron/tetsimu2-hub/internal/session"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config.toml")
	menu := flag.Bool("menu", false, "run the interactive operator menu alongside the server")
	flag.Parse()

	if err := run(*configPath, *menu); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, menu bool) error {
	cfg, err := config.Load(configPath, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("main: load config: %w", err)
	}

	log := logging.New(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps := session.ProcessorDeps{
		SolverPath:    cfg.SolutionFinder.Path,
		EngineFactory: session.NewReferenceEngine,
	}
	srv := server.NewServer(cfg.Addr(), log, deps)

	if menu {
		go cli.Run(os.Stdin, os.Stdout, log)
	}

	log.Info().Str("addr", cfg.Addr()).Msg("hub starting")
	if err := srv.Serve(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("main: serve: %w", err)
	}

	log.Info().Msg("hub stopped")
	return nil
}
