package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/imposter-project/jsonmock/pkg/logger"
)

// storeItem is a single key/value pair in the store_items table
type storeItem struct {
	StoreName string `gorm:"primaryKey;column:store_name"`
	Key       string `gorm:"primaryKey;column:item_key"`
	Value     string `gorm:"column:item_value"`
}

func (storeItem) TableName() string {
	return "store_items"
}

// SQLiteStoreProvider keeps items in a SQLite database, with JSON-encoded values
type SQLiteStoreProvider struct {
	prefix keyPrefix
	path   string
	db     *gorm.DB
}

func NewSQLiteStoreProvider(path string, prefix keyPrefix) *SQLiteStoreProvider {
	return &SQLiteStoreProvider{
		prefix: prefix,
		path:   path,
	}
}

func (p *SQLiteStoreProvider) InitStores() error {
	db, err := gorm.Open(sqlite.Open(p.path), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", p.path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	// a single connection serialises writers, and keeps ":memory:" databases shared
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&storeItem{}); err != nil {
		return fmt.Errorf("failed to migrate store schema: %w", err)
	}
	p.db = db
	return nil
}

func (p *SQLiteStoreProvider) GetValue(storeName, key string) (interface{}, bool) {
	var item storeItem
	err := p.db.Where("store_name = ? AND item_key = ?", storeName, p.prefix.apply(key)).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	} else if err != nil {
		logger.Errorf("failed to get item: %v", err)
		return nil, false
	}
	return decodeJSONValue(item.Value)
}

func (p *SQLiteStoreProvider) StoreValue(storeName, key string, value interface{}) {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		logger.Errorf("failed to marshal value: %v", err)
		return
	}
	item := storeItem{StoreName: storeName, Key: p.prefix.apply(key), Value: string(valueBytes)}
	if err := p.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error; err != nil {
		logger.Errorf("failed to put item: %v", err)
	}
}

func (p *SQLiteStoreProvider) GetAllValues(storeName, keyPrefix string) map[string]interface{} {
	var items []storeItem
	if err := p.db.Where("store_name = ?", storeName).Find(&items).Error; err != nil {
		logger.Errorf("failed to get items: %v", err)
		return nil
	}
	keyPrefix = p.prefix.apply(keyPrefix)
	values := make(map[string]interface{})
	for _, item := range items {
		if !strings.HasPrefix(item.Key, keyPrefix) {
			continue
		}
		if value, ok := decodeJSONValue(item.Value); ok {
			values[p.prefix.remove(item.Key)] = value
		}
	}
	return values
}

func (p *SQLiteStoreProvider) DeleteValue(storeName, key string) {
	err := p.db.Where("store_name = ? AND item_key = ?", storeName, p.prefix.apply(key)).Delete(&storeItem{}).Error
	if err != nil {
		logger.Errorf("failed to delete item: %v", err)
	}
}

func (p *SQLiteStoreProvider) DeleteStore(storeName string) {
	if err := p.db.Where("store_name = ?", storeName).Delete(&storeItem{}).Error; err != nil {
		logger.Errorf("failed to delete store: %v", err)
	}
}

func decodeJSONValue(raw string) (interface{}, bool) {
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Errorf("failed to unmarshal value: %v", err)
		return nil, false
	}
	return value, true
}
