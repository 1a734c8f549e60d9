package store

import (
	"testing"
)

// testProvider exercises the behaviour every provider must share
func testProvider(t *testing.T, provider Provider) {
	t.Run("StoreAndGetValue", func(t *testing.T) {
		provider.StoreValue("test", "key1", "value1")
		val, found := provider.GetValue("test", "key1")
		if !found {
			t.Error("Expected to find value but got not found")
		}
		if val != "value1" {
			t.Errorf("Expected value1 but got %v", val)
		}
	})

	t.Run("GetNonExistentValue", func(t *testing.T) {
		_, found := provider.GetValue("test", "nonexistent")
		if found {
			t.Error("Expected not found for nonexistent key")
		}
	})

	t.Run("OverwriteValue", func(t *testing.T) {
		provider.StoreValue("test", "key1", "value1")
		provider.StoreValue("test", "key1", "value2")
		val, _ := provider.GetValue("test", "key1")
		if val != "value2" {
			t.Errorf("Expected value2 but got %v", val)
		}
	})

	t.Run("GetAllValues", func(t *testing.T) {
		provider.DeleteStore("test")

		provider.StoreValue("test", "prefix.key1", "value1")
		provider.StoreValue("test", "prefix.key2", "value2")
		provider.StoreValue("test", "other.key3", "value3")

		values := provider.GetAllValues("test", "prefix")
		if len(values) != 2 {
			t.Errorf("Expected 2 values but got %d. Values: %v", len(values), values)
		}
		if values["prefix.key1"] != "value1" || values["prefix.key2"] != "value2" {
			t.Errorf("Got unexpected values: %v", values)
		}

		all := provider.GetAllValues("test", "")
		if len(all) != 3 {
			t.Errorf("Expected 3 values but got %d. Values: %v", len(all), all)
		}
	})

	t.Run("StoresAreIsolated", func(t *testing.T) {
		provider.StoreValue("first", "key", "a")
		provider.StoreValue("second", "key", "b")
		if val, _ := provider.GetValue("first", "key"); val != "a" {
			t.Errorf("Expected a but got %v", val)
		}
		if val, _ := provider.GetValue("second", "key"); val != "b" {
			t.Errorf("Expected b but got %v", val)
		}
	})

	t.Run("DeleteValue", func(t *testing.T) {
		provider.StoreValue("test", "key1", "value1")
		provider.DeleteValue("test", "key1")
		_, found := provider.GetValue("test", "key1")
		if found {
			t.Error("Value should have been deleted")
		}
	})

	t.Run("DeleteStore", func(t *testing.T) {
		provider.StoreValue("test", "key1", "value1")
		provider.DeleteStore("test")
		_, found := provider.GetValue("test", "key1")
		if found {
			t.Error("Store should have been deleted")
		}
		if values := provider.GetAllValues("test", ""); len(values) != 0 {
			t.Errorf("Expected empty store, got %v", values)
		}
	})

	t.Run("StoreComplexValue", func(t *testing.T) {
		complexValue := map[string]interface{}{
			"name": "test",
			"age":  float64(30),
			"nested": map[string]interface{}{
				"key": "value",
			},
		}
		provider.StoreValue("test", "complex", complexValue)
		val, found := provider.GetValue("test", "complex")
		if !found {
			t.Fatal("Expected to find complex value")
		}
		mapVal, ok := val.(map[string]interface{})
		if !ok {
			t.Fatal("Expected map type for complex value")
		}
		if mapVal["name"] != "test" || mapVal["age"] != float64(30) {
			t.Error("Complex value not stored correctly")
		}
	})
}
