package store

import (
	"fmt"
	"strings"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// Provider defines the contract for store implementations. Implementations
// must be safe for concurrent use.
type Provider interface {
	InitStores() error
	GetValue(storeName, key string) (interface{}, bool)
	StoreValue(storeName, key string, value interface{})
	GetAllValues(storeName, keyPrefix string) map[string]interface{}
	DeleteValue(storeName, key string)
	DeleteStore(storeName string)
}

// Store represents a handle to a specific named store
type Store struct {
	name     string
	provider Provider
}

// Open returns a handle to a specific store
func Open(provider Provider, storeName string) *Store {
	return &Store{
		name:     storeName,
		provider: provider,
	}
}

// Name returns the store name
func (s *Store) Name() string {
	return s.name
}

// GetValue retrieves a value from the store
func (s *Store) GetValue(key string) (interface{}, bool) {
	return s.provider.GetValue(s.name, key)
}

// StoreValue stores a value in the store
func (s *Store) StoreValue(key string, value interface{}) {
	s.provider.StoreValue(s.name, key, value)
}

// GetAllValues retrieves all values from the store with an optional prefix
func (s *Store) GetAllValues(keyPrefix string) map[string]interface{} {
	return s.provider.GetAllValues(s.name, keyPrefix)
}

// DeleteValue removes a value from the store
func (s *Store) DeleteValue(key string) {
	s.provider.DeleteValue(s.name, key)
}

// Clear removes the entire store
func (s *Store) Clear() {
	s.provider.DeleteStore(s.name)
}

// NewProvider creates and initialises the provider selected by the store configuration
func NewProvider(cfg config.StoreConfig) (Provider, error) {
	prefix := keyPrefix(cfg.KeyPrefix)

	var provider Provider
	switch cfg.Driver {
	case "", config.StoreDriverInMemory:
		provider = NewInMemoryStoreProvider(prefix)
	case config.StoreDriverRedis:
		provider = NewRedisStoreProvider(cfg, prefix)
	case config.StoreDriverDynamoDB:
		provider = NewDynamoDBStoreProvider(cfg, prefix)
	case config.StoreDriverSQLite:
		provider = NewSQLiteStoreProvider(cfg.SQLitePath, prefix)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}

	if err := provider.InitStores(); err != nil {
		return nil, fmt.Errorf("failed to initialise %s: %w", DriverName(cfg.Driver), err)
	}
	logger.Debugf("initialised store provider: %s", DriverName(cfg.Driver))
	return provider, nil
}

// Preload stores each item under its key
func Preload(provider Provider, storeName string, items map[string]interface{}) {
	logger.Debugf("preloading store '%s' with %d items", storeName, len(items))
	s := Open(provider, storeName)
	for k, v := range items {
		s.StoreValue(k, v)
	}
}

// DriverName returns the store driver name, resolving the empty default
func DriverName(driver string) string {
	if driver == "" {
		return config.StoreDriverInMemory
	}
	return driver
}

// keyPrefix namespaces keys, so several servers can share a backing store
type keyPrefix string

func (p keyPrefix) apply(key string) string {
	if p != "" {
		return string(p) + "." + key
	}
	return key
}

func (p keyPrefix) remove(key string) string {
	if p != "" {
		return strings.TrimPrefix(key, string(p)+".")
	}
	return key
}
