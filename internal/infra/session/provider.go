package session

import (
	"passport/config"
	"passport/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// NewStore selects the session store backend from config: Redis when
// configured, otherwise the in-process store.
func NewStore(cfg *config.Config) repository.SessionStore {
	if cfg.Redis == nil {
		return NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return NewRedisStore(client, cfg.Auth.SessionTTL)
}
