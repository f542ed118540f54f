package database

import (
	"context"
	"fmt"

	"github.com/go-sod/attrition/internal/logging"
	bolt "go.etcd.io/bbolt"
)

type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("opening bolt artifact store %s (read-only: %v)", config.FileName, config.ReadOnly)

	db, err := bolt.Open(config.FileName, 0600, &bolt.Options{
		ReadOnly: config.ReadOnly,
		Timeout:  config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening bolt file %s: %w", config.FileName, err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing bolt artifact store")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error close bolt db: %w", err)
	}

	return nil
}
