package router

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDatabase reads a seed file. JSON is the default format; files ending in
// .yaml or .yml are parsed as YAML. Numbers are normalised to float64
// whichever format the file uses.
func LoadDatabase(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read database file: %w", err)
	}

	var db map[string]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML database %s: %w", path, err)
		}
		normalised, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("unsupported value in YAML database %s: %w", path, err)
		}
		data = normalised
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to unmarshal database %s: %w", path, err)
	}
	if db == nil {
		db = make(map[string]interface{})
	}
	return db, nil
}
