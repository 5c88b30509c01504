package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
Fare Engine

Usage:
  fare-engine [flags]

Flags:
  -config-path string   Path to the config yaml file (default "config.yaml")
  -tariff-path string   Path to the tariff json file (overrides TARIFF_CONFIG_PATH)
  -help                 Show this message

The tariff file is required: startup aborts when it is missing or invalid.
Send SIGHUP to reload it without restarting.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig dumps the effective configuration, masking secrets.
func PrintConfig(cfg *Config) {
	fmt.Printf("server:    %s:%s\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("database:  %s:%s/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Printf("rabbitmq:  %s:%s\n", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Printf("tariff:    %s\n", cfg.Tariff.Path)
	fmt.Printf("log level: %s\n", cfg.Log.Level)
}
