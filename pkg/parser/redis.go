package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	redis "github.com/redis/go-redis/v9"
)

// DefaultRedisAddr is used when no address is configured.
const DefaultRedisAddr = "127.0.0.1:6379"

// RedisConfig configures a RedisSource.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// DefaultRedisBatch is how many list elements are fetched per LRANGE.
const DefaultRedisBatch = 500

// listClient is the subset of the Redis client used by RedisSource.
type listClient interface {
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	Close() error
}

// RedisSource implements RecordSource by reading a Redis list from the head.
// Elements stay in the list until Commit trims them, so a run that fails
// part way leaves the queue intact. Producers are expected to RPUSH.
type RedisSource struct {
	client    listClient
	key       string
	batchSize int64

	pending  []string
	offset   int64 // index of the next element to fetch
	consumed int64 // elements handed out since the last Commit
	skipped  int
}

// NewRedisSource connects a RedisSource to the list named by cfg.Key.
func NewRedisSource(cfg RedisConfig) (*RedisSource, error) {
	if cfg.Key == "" {
		return nil, errors.New("redis key is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultRedisAddr
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return newRedisSource(client, cfg.Key), nil
}

func newRedisSource(client listClient, key string) *RedisSource {
	return &RedisSource{client: client, key: key, batchSize: DefaultRedisBatch}
}

// ParseRedisURL converts "redis://[:password@]host:port[/db]?key=<list>" into a RedisConfig.
func ParseRedisURL(raw string) (RedisConfig, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid redis url: %w", err)
	}

	q := u.Query()
	key := q.Get("key")
	if key == "" {
		return RedisConfig{}, fmt.Errorf("redis url %q: key query parameter is required", raw)
	}
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid redis url: %w", err)
	}

	return RedisConfig{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		Key:      key,
	}, nil
}

// Next returns the next decoded list element.
// Returns io.EOF once every element present in the list has been read.
func (s *RedisSource) Next(ctx context.Context) (*Record, error) {
	for {
		if len(s.pending) == 0 {
			items, err := s.client.LRange(ctx, s.key, s.offset, s.offset+s.batchSize-1).Result()
			if err != nil {
				return nil, fmt.Errorf("reading redis list %s: %w", s.key, err)
			}
			if len(items) == 0 {
				return nil, io.EOF
			}
			s.pending = items
			s.offset += int64(len(items))
		}

		payload := []byte(s.pending[0])
		s.pending = s.pending[1:]
		s.consumed++

		fields, err := DecodeRecord(payload)
		if err != nil {
			s.skipped++
			slog.Warn("skipping redis payload that is not a JSON object",
				"key", s.key, "seq", s.consumed, "content", preview(payload), "err", err)
			continue
		}

		return &Record{
			Fields:  fields,
			Source:  "redis:" + s.key,
			LineNum: int(s.consumed),
		}, nil
	}
}

// Commit removes every element handed out by Next from the head of the list.
// Call it only after the run's output has been written.
func (s *RedisSource) Commit(ctx context.Context) error {
	if s.consumed == 0 {
		return nil
	}
	if err := s.client.LTrim(ctx, s.key, s.consumed, -1).Err(); err != nil {
		return fmt.Errorf("trimming redis list %s: %w", s.key, err)
	}
	s.offset -= s.consumed
	s.consumed = 0
	return nil
}

// Skipped returns the number of payloads dropped because they could not be decoded.
func (s *RedisSource) Skipped() int {
	return s.skipped
}

// Close closes the Redis client.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
