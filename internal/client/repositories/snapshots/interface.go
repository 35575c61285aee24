package snapshots

import (
	"context"
	"time"
)

// Snapshot is one persisted blob.
type Snapshot struct {
	Key       string
	Version   int
	Value     []byte
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns (nil, nil) when key has never been stored.
	Get(ctx context.Context, key string) (*Snapshot, error)
	Put(ctx context.Context, s Snapshot) error
	// PutAll writes every snapshot in one transaction.
	PutAll(ctx context.Context, ss ...Snapshot) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Snapshot, error)
	Clear(ctx context.Context) error
}
