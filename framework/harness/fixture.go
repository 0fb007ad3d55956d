package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFieldMapFile reads a JSON or YAML file whose top level is an object, and returns
// its properties as a FieldMap in the order they appear in the file. Any failure is
// returned as a *FixtureError.
func LoadFieldMapFile(path string) (FieldMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldMap{}, &FixtureError{Path: path, Err: err}
	}
	var m FieldMap
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = parseYAMLFieldMap(data)
	default:
		m, err = ParseJSONFieldMap(data)
	}
	if err != nil {
		return FieldMap{}, &FixtureError{Path: path, Err: err}
	}
	return m, nil
}

// ParseJSONFieldMap parses a JSON object into a FieldMap, preserving key order.
func ParseJSONFieldMap(data []byte) (FieldMap, error) {
	var m FieldMap
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return m, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return m, errors.New("expected a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return m, err
		}
		key, ok := tok.(string)
		if !ok {
			return m, fmt.Errorf("unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return m, fmt.Errorf("property %q: %w", key, err)
		}
		m.Set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return m, err
	}
	return m, nil
}

func parseYAMLFieldMap(data []byte) (FieldMap, error) {
	var m FieldMap
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return m, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return m, errors.New("expected a YAML mapping")
	}
	node := doc.Content[0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return m, fmt.Errorf("property %q: %w", key, err)
		}
		m.Set(key, value)
	}
	return m, nil
}
