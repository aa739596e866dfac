// Package main provides the game server binary: a headless roguelike
// simulation exposed over WebSocket.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/delver-game/delver/internal/config"
	"github.com/delver-game/delver/internal/game/engine"
	"github.com/delver-game/delver/internal/game/ruleset"
	"github.com/delver-game/delver/internal/game/rng"
	"github.com/delver-game/delver/internal/observability"
	"github.com/delver-game/delver/internal/server"
	"github.com/delver-game/delver/internal/transport"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "content", "path to game content directory")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	contentStart := time.Now()
	registry, err := ruleset.Load(*contentDir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Strings("classes", registry.ClassIDs()),
		zap.Duration("elapsed", time.Since(contentStart)),
	)

	factory := func() *engine.Game {
		// Each session gets its own source. A fixed seed in config still
		// makes every session reproducible, just identical to each other.
		return engine.NewGame(cfg.Game, registry, logger, rng.ForSeed(cfg.Game.Seed))
	}
	ws := transport.New(cfg.Server, factory, logger)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("websocket", ws)

	logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("addr", cfg.Server.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
