package settings

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/truemediaorg/postgrab/model"
)

// connectionTimeout bounds the initial ping.
const connectionTimeout = 5 * time.Second

// RedisStore keeps the blob as a plain string value, for deployments where
// several instances share one configuration.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context) (model.Settings, error) {
	blob, err := s.client.Get(ctx, StorageKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.DefaultSettings(), nil
		}
		return model.DefaultSettings(), errors.Wrap(err, "reading settings from redis")
	}
	return decode(blob), nil
}

func (s *RedisStore) Save(ctx context.Context, settings model.Settings) error {
	blob, err := encode(settings)
	if err != nil {
		return err
	}
	return errors.Wrap(s.client.Set(ctx, StorageKey, blob, 0).Err(), "writing settings to redis")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
