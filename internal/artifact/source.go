package artifact

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Source when the named artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Source reads persisted artifacts by name.
type Source interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Close(ctx context.Context) error
}

// Sink stores artifacts by name. Used when importing artifacts into a store.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

type ProvideFn func(ctx context.Context) (Source, error)

type Kind string

const (
	KindFile  Kind = "FILE"
	KindBolt  Kind = "BOLT"
	KindRedis Kind = "REDIS"
)
