package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// DefaultNATSBucket is the KV bucket used when none is configured.
const DefaultNATSBucket = "todolist"

const natsOpTimeout = 5 * time.Second

// NATSOptions configures a NATSStore.
type NATSOptions struct {
	// URL of an existing server. Empty starts an embedded in-process server.
	URL    string
	Bucket string
	// DataDir holds JetStream files for the embedded server.
	DataDir string
}

// NATSStore keeps values in a JetStream key-value bucket.
type NATSStore struct {
	conn     *nats.Conn
	embedded *server.Server
	kv       jetstream.KeyValue
	bucket   string
}

// NewNATSStore connects to NATS (or starts an embedded server) and opens the
// bucket, creating it when missing.
func NewNATSStore(ctx context.Context, opts NATSOptions) (*NATSStore, error) {
	bucket := opts.Bucket
	if bucket == "" {
		bucket = DefaultNATSBucket
	}

	s := &NATSStore{bucket: bucket}

	var err error
	if opts.URL == "" {
		if opts.DataDir == "" {
			return nil, fmt.Errorf("embedded nats needs a data dir")
		}
		s.embedded, err = startEmbedded(opts.DataDir)
		if err != nil {
			return nil, err
		}
		s.conn, err = nats.Connect("", nats.InProcessServer(s.embedded))
	} else {
		s.conn, err = nats.Connect(opts.URL)
	}
	if err != nil {
		s.shutdownServer()
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(s.conn)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	if err := s.openBucket(ctx, js); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func startEmbedded(dataDir string) (*server.Server, error) {
	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedded nats server: %w", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("embedded nats server failed to start within timeout")
	}
	return ns, nil
}

func (s *NATSStore) openBucket(ctx context.Context, js jetstream.JetStream) error {
	ctx, cancel := context.WithTimeout(ctx, natsOpTimeout)
	defer cancel()

	kv, err := js.KeyValue(ctx, s.bucket)
	if err == nil {
		s.kv = kv
		return nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return fmt.Errorf("open kv bucket %s: %w", s.bucket, err)
	}

	kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      s.bucket,
		Description: "todolist task storage",
		History:     1,
	})
	if err != nil {
		return fmt.Errorf("create kv bucket %s: %w", s.bucket, err)
	}
	s.kv = kv
	return nil
}

// Bucket returns the KV bucket name.
func (s *NATSStore) Bucket() string {
	return s.bucket
}

func (s *NATSStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, natsOpTimeout)
	defer cancel()

	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get key %q: %w", key, err)
	}
	return entry.Value(), true, nil
}

func (s *NATSStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, natsOpTimeout)
	defer cancel()

	if _, err := s.kv.Put(ctx, key, value); err != nil {
		return fmt.Errorf("put key %q: %w", key, err)
	}
	return nil
}

func (s *NATSStore) Kind() string { return KindNATS }

// Close closes the connection and stops the embedded server if one was
// started.
func (s *NATSStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.shutdownServer()
	return nil
}

func (s *NATSStore) shutdownServer() {
	if s.embedded == nil {
		return
	}
	s.embedded.Shutdown()
	s.embedded.WaitForShutdown()
	s.embedded = nil
}
