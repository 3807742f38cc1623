// Package redis provides a Redis-backed calendar store. The whole calendar
// lives under a single key as the same JSON document the file store writes,
// so documents can be migrated between backends without conversion.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/a2acal/calendar"
)

// Compile time check to ensure Store satisfies the calendar.Store interface.
var _ calendar.Store = (*Store)(nil)

// Options configures the Redis calendar store.
type Options struct {
	// Addr is the host:port of the Redis server.
	Addr string
	// Password authenticates against the server, empty for none.
	Password string
	// DB selects the logical database.
	DB int
	// Key is the key holding the calendar document.
	Key string
}

// Store persists a calendar as one JSON document under a single Redis key.
// Like the file store it relies on BookingService for write exclusion; Redis
// only guarantees atomicity of the individual GET and SET.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New creates a store with its own Redis client.
func New(optFns ...func(o *Options)) *Store {
	opts := Options{
		Addr: "localhost:6379",
		Key:  "a2acal:calendar",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &Store{client: client, key: opts.Key}
}

// NewFromClient creates a store over an existing client. An empty key falls
// back to the default document key.
func NewFromClient(client redis.UniversalClient, key string) *Store {
	if key == "" {
		key = "a2acal:calendar"
	}
	return &Store{client: client, key: key}
}

// Load fetches and decodes the calendar document. A missing key loads as an
// empty calendar; an undecodable document fails with
// calendar.ErrCorruptStorage.
func (s *Store) Load(ctx context.Context) (calendar.Calendar, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return calendar.Calendar{}, nil
		}
		return calendar.Calendar{}, fmt.Errorf("read calendar %s: %w", s.key, err)
	}

	cal, err := calendar.UnmarshalCalendar(raw)
	if err != nil {
		return calendar.Calendar{}, fmt.Errorf("%w: %s", err, s.key)
	}
	return cal, nil
}

// Save replaces the document with the full event set.
func (s *Store) Save(ctx context.Context, cal calendar.Calendar) error {
	raw, err := calendar.MarshalCalendar(cal)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write calendar %s: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
