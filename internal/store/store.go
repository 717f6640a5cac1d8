// Package store owns the user record collection. The uniqueness invariant on
// email is enforced by a unique index at the storage layer, so two concurrent
// registrations with the same address cannot both succeed.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/authd/internal/logger"
)

// DB wraps a GORM database handle.
type DB struct {
	gormDB *gorm.DB
	log    *logger.Logger
	cfg    Config
}

// Open opens the database with retry logic and connection pooling, and runs
// migrations when configured. TranslateError is enabled so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	}

	var db *gorm.DB
	var err error

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("store: open canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
				if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
					sqlDB.SetConnMaxLifetime(lifetime)
				}

				log.Info("Database connection established", map[string]interface{}{
					"attempt": attempt,
				})
				s := &DB{gormDB: db, log: log, cfg: cfg}
				if cfg.AutoMigrate {
					if migErr := s.Migrate(); migErr != nil {
						return nil, migErr
					}
				}
				return s, nil
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("Database connection attempt failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
				"backoff": backoff.String(),
			})
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("store: open canceled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("store: connect after %d attempts: %w", cfg.MaxRetries, err)
}

// Migrate creates or updates the schema.
func (db *DB) Migrate() error {
	if err := db.gormDB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gormDB.DB()
	if err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.gormDB.DB()
	if err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return sqlDB.Close()
}

// Users returns the user store backed by this database.
func (db *DB) Users() *UserStore {
	return &UserStore{db: db.gormDB}
}
