// Package store persists single key-value strings.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Backend kinds.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindNATS   = "nats"
	KindMemory = "memory"
)

// Store is a durable key-value store holding string values.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set replaces the value stored under key in a single write.
	Set(ctx context.Context, key string, value []byte) error
	// Kind names the backend.
	Kind() string
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Kind       string
	Path       string // file backend
	SQLitePath string
	NATSURL    string // empty starts an embedded server
	NATSBucket string
	NATSDir    string // embedded server storage
}

// Open builds the backend named by opts.Kind.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", KindFile:
		return NewFileStore(opts.Path)
	case KindSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	case KindNATS:
		return NewNATSStore(ctx, NATSOptions{
			URL:     opts.NATSURL,
			Bucket:  opts.NATSBucket,
			DataDir: opts.NATSDir,
		})
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store kind %q (expected file|sqlite|nats|memory)", opts.Kind)
	}
}

// ValidKind reports whether kind names a known backend.
func ValidKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindFile, KindSQLite, KindNATS, KindMemory:
		return true
	}
	return false
}
