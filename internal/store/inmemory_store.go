package store

import (
	"strings"
	"sync"
)

type InMemoryStoreProvider struct {
	prefix keyPrefix
	mu     sync.RWMutex
	stores map[string]map[string]interface{}
}

func NewInMemoryStoreProvider(prefix keyPrefix) *InMemoryStoreProvider {
	return &InMemoryStoreProvider{
		prefix: prefix,
		stores: make(map[string]map[string]interface{}),
	}
}

func (p *InMemoryStoreProvider) InitStores() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stores = make(map[string]map[string]interface{})
	return nil
}

func (p *InMemoryStoreProvider) GetValue(storeName, key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	store, ok := p.stores[storeName]
	if !ok {
		return nil, false
	}
	val, found := store[p.prefix.apply(key)]
	return val, found
}

func (p *InMemoryStoreProvider) StoreValue(storeName, key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.stores[storeName]; !ok {
		p.stores[storeName] = make(map[string]interface{})
	}
	p.stores[storeName][p.prefix.apply(key)] = value
}

func (p *InMemoryStoreProvider) GetAllValues(storeName, keyPrefix string) map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	store, ok := p.stores[storeName]
	if !ok {
		return nil
	}
	result := make(map[string]interface{})
	keyPrefix = p.prefix.apply(keyPrefix)
	for k, v := range store {
		if strings.HasPrefix(k, keyPrefix) {
			result[p.prefix.remove(k)] = v
		}
	}
	return result
}

func (p *InMemoryStoreProvider) DeleteValue(storeName, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if store, ok := p.stores[storeName]; ok {
		delete(store, p.prefix.apply(key))
	}
}

func (p *InMemoryStoreProvider) DeleteStore(storeName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stores, storeName)
}
