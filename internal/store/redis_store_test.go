package store

import (
	"os"
	"testing"
	"time"

	"github.com/imposter-project/jsonmock/internal/config"
)

func setupRedisTest(t *testing.T) *RedisStoreProvider {
	// Skip if Redis is not available
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("Skipping Redis tests: REDIS_ADDR not set")
	}

	provider := NewRedisStoreProvider(config.StoreConfig{
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisExpiry:   time.Minute,
	}, "")
	if err := provider.InitStores(); err != nil {
		t.Fatal(err)
	}

	// Clear test data
	provider.client.FlushDB(provider.ctx)

	return provider
}

func TestRedisStore(t *testing.T) {
	testProvider(t, setupRedisTest(t))
}

func TestRedisStore_Expiration(t *testing.T) {
	provider := setupRedisTest(t)
	provider.expiration = time.Second

	provider.StoreValue("expiring", "key", "value")
	time.Sleep(2 * time.Second)

	if _, found := provider.GetValue("expiring", "key"); found {
		t.Error("Value should have expired")
	}
}

func TestRedisConnection(t *testing.T) {
	t.Run("InvalidConnection", func(t *testing.T) {
		provider := NewRedisStoreProvider(config.StoreConfig{RedisAddr: "localhost:1"}, "")
		if err := provider.InitStores(); err != nil {
			t.Fatal(err)
		}

		// Operations should fail gracefully
		provider.StoreValue("test", "key", "value")
		_, found := provider.GetValue("test", "key")
		if found {
			t.Error("Expected operation to fail with invalid connection")
		}
	})
}
