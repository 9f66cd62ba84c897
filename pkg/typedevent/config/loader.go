package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, v any) error

// decoders maps a lower-case file extension to its document decoder.
var decoders = map[string]decodeFunc{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".json": json.Unmarshal,
}

// FromFile loads a YAML (.yaml, .yml) or JSON (.json) document.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return Config{}, fmt.Errorf("unsupported config file extension %q: %s", ext, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := parse(data, decode)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses a YAML document. An empty document yields an empty Config.
func FromYAML(data []byte) (Config, error) {
	cfg, err := parse(data, yaml.Unmarshal)
	if err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// FromJSON parses a JSON object.
func FromJSON(data []byte) (Config, error) {
	cfg, err := parse(data, json.Unmarshal)
	if err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return cfg, nil
}

func parse(data []byte, decode decodeFunc) (Config, error) {
	var m map[string]any
	if err := decode(data, &m); err != nil {
		return Config{}, err
	}
	return New(m), nil
}
