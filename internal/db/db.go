package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pawmart-web/internal/config"
	"pawmart-web/internal/logger"

	_ "github.com/lib/pq"
)

var ErrNoDatabaseURL = errors.New("DB_URL is not set")

const pingTimeout = 5 * time.Second

// NewDatabase opens the Postgres pool holding payment hand-offs and checks it
// answers.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(cfg, "postgres")
}

func newDatabaseWithDriver(cfg *config.Config, driverName string) (*sql.DB, error) {
	if cfg.DBURL == "" {
		return nil, ErrNoDatabaseURL
	}

	db, err := sql.Open(driverName, cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.L().Info("database connection established")
	return db, nil
}
