package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/vendingmachine/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"API_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
	Postgres        config.PostgresConfig
	Vending         config.VendingConfig
}
