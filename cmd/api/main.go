package main

import (
	"context"
	"flag"

	"github.com/kaganyildiz/academix/internal/bootstrap"
	"github.com/kaganyildiz/academix/internal/pkg/logger"
	"github.com/kaganyildiz/academix/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	database, err := bootstrap.SetupDatabase(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up database")
	}
	defer database.Close()

	deps := bootstrap.BuildDependencies(cfg, database)
	if deps.RedisClient != nil {
		defer deps.RedisClient.Close()
	}

	router := bootstrap.SetupRouter(cfg, deps)

	if err := server.Run(cfg, router); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
