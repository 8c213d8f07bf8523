package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ghodss/yaml"

	"github.com/safing/random/base/log"
)

var (
	configFilePath     string
	configFilePathLock sync.Mutex
)

// SetConfigFile sets the file the configuration is loaded from and saved to.
// Files ending in .yaml or .yml are read and written as YAML, everything else as JSON.
func SetConfigFile(filePath string) {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()

	configFilePath = filePath
}

func getConfigFile() string {
	configFilePathLock.Lock()
	defer configFilePathLock.Unlock()

	return configFilePath
}

func isYAML(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig loads the configuration file, if one is set. A missing file is
// not an error. Values that fail validation are reported, all valid values
// are applied.
func LoadConfig() error {
	filePath := getConfigFile()
	if filePath == "" {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("config: no config file at %s", filePath)
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var newValues map[string]interface{}
	if isYAML(filePath) {
		newValues, err = YAMLToMap(data)
	} else {
		newValues, err = JSONToMap(data)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	return ReplaceConfig(newValues)
}

// SaveConfig saves the current user defined configuration to file, if one is set.
func SaveConfig() error {
	filePath := getConfigFile()
	if filePath == "" {
		return nil
	}

	optionsLock.RLock()
	activeValues := make(map[string]interface{})
	for key, option := range options {
		option.Lock()
		if option.activeValue != nil {
			activeValues[key] = option.activeValue.getData(option)
		}
		option.Unlock()
	}
	optionsLock.RUnlock()

	data, err := MapToJSON(activeValues)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if isYAML(filePath) {
		data, err = yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
	}

	return os.WriteFile(filePath, data, 0o0600)
}

// JSONToMap parses and flattens a hierarchical json object.
func JSONToMap(jsonData []byte) (map[string]interface{}, error) {
	loaded := make(map[string]interface{})
	err := json.Unmarshal(jsonData, &loaded)
	if err != nil {
		return nil, err
	}

	return Flatten(loaded), nil
}

// YAMLToMap parses and flattens a hierarchical yaml document.
func YAMLToMap(yamlData []byte) (map[string]interface{}, error) {
	jsonData, err := yaml.YAMLToJSON(yamlData)
	if err != nil {
		return nil, err
	}
	return JSONToMap(jsonData)
}

// Flatten returns a flattened copy of the given hierarchical config.
func Flatten(config map[string]interface{}) (flattenedConfig map[string]interface{}) {
	flattenedConfig = make(map[string]interface{})
	flattenMap(flattenedConfig, config, "")
	return flattenedConfig
}

func flattenMap(rootMap, subMap map[string]interface{}, subKey string) {
	for key, entry := range subMap {
		subbedKey := path.Join(subKey, key)

		nextSub, ok := entry.(map[string]interface{})
		if ok {
			flattenMap(rootMap, nextSub, subbedKey)
		} else {
			rootMap[subbedKey] = entry
		}
	}
}

// MapToJSON expands a flattened map and returns it as json.
func MapToJSON(config map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(Expand(config), "", "  ")
}

// Expand returns a hierarchical copy of the given flattened config.
func Expand(flattenedConfig map[string]interface{}) (config map[string]interface{}) {
	config = make(map[string]interface{})
	for key, entry := range flattenedConfig {
		PutValueIntoHierarchicalConfig(config, key, entry)
	}
	return config
}

// PutValueIntoHierarchicalConfig injects a configuration entry into an hierarchical config map. Conflicting entries will be replaced.
func PutValueIntoHierarchicalConfig(config map[string]interface{}, key string, value interface{}) {
	parts := strings.Split(key, "/")

	subMap := config
	for _, part := range parts[:len(parts)-1] {
		nextSubMap, ok := subMap[part].(map[string]interface{})
		if !ok {
			nextSubMap = make(map[string]interface{})
			subMap[part] = nextSubMap
		}
		subMap = nextSubMap
	}

	subMap[parts[len(parts)-1]] = value
}
