package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Config хранит конфигурацию для подключения к MySQL
type Config struct {
	DSN             string // "user:password@tcp(host:3306)/dbname"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewClient открывает пул соединений к MySQL. parseTime включается принудительно:
// колонки DATETIME сканируются в time.Time.
func NewClient(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("MYSQL_DSN configuration is required")
	}

	driverCfg, err := mysql.ParseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql DSN: %w", err)
	}
	driverCfg.ParseTime = true
	driverCfg.Loc = time.UTC

	db, err := sqlx.Open("mysql", driverCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open mysql connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping mysql: %w", err)
	}

	return db, nil
}
