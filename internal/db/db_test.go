package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"pawmart-web/internal/config"
	"pawmart-web/internal/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Mock drivers ---
// okDriver hands out connections that accept every ping; downDriver refuses
// to connect at all.

type okDriver struct{}

func (okDriver) Open(string) (driver.Conn, error) { return &mockConn{}, nil }

type downDriver struct{}

func (downDriver) Open(string) (driver.Conn, error) { return nil, errors.New("connection refused") }

type mockConn struct{}

func (c *mockConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (c *mockConn) Close() error                        { return nil }
func (c *mockConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

func init() {
	sql.Register("pawmart_ok", okDriver{})
	sql.Register("pawmart_down", downDriver{})
}

func TestNewDatabase(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))

	t.Run("Missing URL", func(t *testing.T) {
		db, err := NewDatabase(&config.Config{})
		assert.ErrorIs(t, err, ErrNoDatabaseURL)
		assert.Nil(t, db)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{DBURL: "x"}, "invalid_driver_name")
		assert.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to connect to DB")
	})

	t.Run("Ping failure", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{DBURL: "x"}, "pawmart_down")
		assert.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to ping DB")
	})

	t.Run("Success", func(t *testing.T) {
		db, err := newDatabaseWithDriver(&config.Config{DBURL: "x"}, "pawmart_ok")
		assert.NoError(t, err)
		if assert.NotNil(t, db) {
			assert.NoError(t, db.Close())
		}
	})
}
