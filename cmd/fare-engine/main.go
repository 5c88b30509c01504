package main

import (
	"context"
	"flag"
	"os"

	"github.com/transpo-mobility/fare-engine/config"
	"github.com/transpo-mobility/fare-engine/internal/app"
	"github.com/transpo-mobility/fare-engine/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
	tariffPath = flag.String("tariff-path", "", "Path to the tariff json file (overrides TARIFF_CONFIG_PATH)")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	if *tariffPath != "" {
		cfg.Tariff.Path = *tariffPath
	}

	// Printing configuration
	config.PrintConfig(cfg)

	log = logger.InitLogger("fare-engine", cfg.Log.Level)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "failed to run application", err)
		os.Exit(1)
	}
}
