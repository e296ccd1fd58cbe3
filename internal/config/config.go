package config

import (
	"time"

	"github.com/google/uuid"
)

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" default:"30m"`
}

type SQLiteConfig struct {
	Path        string        `env:"SQLITE_PATH"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT" default:"5s"`
}

// VendingConfig identifies the physical machine whose reserve the engine
// operates on.
type VendingConfig struct {
	MachineID uuid.UUID `env:"VENDING_MACHINE_ID" default:"00000000-0000-0000-0000-000000000000"`
}
