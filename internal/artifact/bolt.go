package artifact

import (
	"context"
	"fmt"

	"github.com/go-sod/attrition/internal/database"
	bolt "go.etcd.io/bbolt"
)

// BoltSource reads artifacts from a single bucket of a bolt file, keyed by
// artifact name.
type BoltSource struct {
	db     *database.DB
	bucket []byte
}

func NewBoltSource(db *database.DB, bucket string) *BoltSource {
	return &BoltSource{db: db, bucket: []byte(bucket)}
}

func (s *BoltSource) Load(_ context.Context, name string) ([]byte, error) {
	var data []byte
	if err := s.db.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("bucket %s: %w", s.bucket, ErrNotFound)
		}
		v := b.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("%s/%s: %w", s.bucket, name, ErrNotFound)
		}
		// v is only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}
	return data, nil
}

func (s *BoltSource) Put(_ context.Context, name string, data []byte) error {
	if err := s.db.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(name), data); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}
	return nil
}

func (s *BoltSource) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}
