package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// RedisStoreProvider keeps each store in a Redis hash, with JSON-encoded values
type RedisStoreProvider struct {
	prefix     keyPrefix
	addr       string
	password   string
	expiration time.Duration
	client     *redis.Client
	ctx        context.Context
}

func NewRedisStoreProvider(cfg config.StoreConfig, prefix keyPrefix) *RedisStoreProvider {
	return &RedisStoreProvider{
		prefix:     prefix,
		addr:       cfg.RedisAddr,
		password:   cfg.RedisPassword,
		expiration: cfg.RedisExpiry,
	}
}

func (p *RedisStoreProvider) InitStores() error {
	p.ctx = context.Background()
	p.client = redis.NewClient(&redis.Options{
		Addr:     p.addr,
		Password: p.password,
		DB:       0,
	})
	if p.expiration <= 0 {
		p.expiration = config.DefaultRedisExpiry
	}
	return nil
}

func (p *RedisStoreProvider) GetValue(storeName, key string) (interface{}, bool) {
	val, err := p.client.HGet(p.ctx, storeName, p.prefix.apply(key)).Result()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		logger.Errorf("failed to get item: %v", err)
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal([]byte(val), &value); err != nil {
		logger.Errorf("failed to unmarshal value: %v", err)
		return nil, false
	}
	return value, true
}

func (p *RedisStoreProvider) StoreValue(storeName, key string, value interface{}) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		logger.Errorf("failed to marshal value: %v", err)
		return
	}
	if err := p.client.HSet(p.ctx, storeName, p.prefix.apply(key), valueBytes).Err(); err != nil {
		logger.Errorf("failed to set item: %v", err)
		return
	}
	if err := p.client.Expire(p.ctx, storeName, p.expiration).Err(); err != nil {
		logger.Errorf("failed to set expiration: %v", err)
	}
}

func (p *RedisStoreProvider) GetAllValues(storeName, keyPrefix string) map[string]interface{} {
	keyPrefix = p.prefix.apply(keyPrefix)
	vals, err := p.client.HGetAll(p.ctx, storeName).Result()
	if err != nil {
		logger.Errorf("failed to get items: %v", err)
		return nil
	}
	items := make(map[string]interface{})
	for key, val := range vals {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		var value interface{}
		if err := json.Unmarshal([]byte(val), &value); err != nil {
			logger.Errorf("failed to unmarshal value: %v", err)
			continue
		}
		items[p.prefix.remove(key)] = value
	}
	return items
}

func (p *RedisStoreProvider) DeleteValue(storeName, key string) {
	if err := p.client.HDel(p.ctx, storeName, p.prefix.apply(key)).Err(); err != nil {
		logger.Errorf("failed to delete item: %v", err)
	}
}

func (p *RedisStoreProvider) DeleteStore(storeName string) {
	if err := p.client.Del(p.ctx, storeName).Err(); err != nil {
		logger.Errorf("failed to delete store: %v", err)
	}
}
