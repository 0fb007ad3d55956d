package harness

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// FieldMap is an ordered mapping from logical field names to JSON values. It is the
// generic payload that create and update calls are built from. Keys keep the order in
// which they were first set.
//
// The zero value is an empty map ready to use.
type FieldMap struct {
	keys   []string
	values map[string]ldvalue.Value
}

// NewFieldMap creates a FieldMap from alternating key and value arguments. Values can be
// anything accepted by ToValue.
//
// It panics with a *ConfigurationError if a key is not a string or the last key has no
// value. Inside a scenario step that panic aborts the scenario.
func NewFieldMap(keysAndValues ...interface{}) FieldMap {
	if len(keysAndValues)%2 != 0 {
		panic(&ConfigurationError{Message: fmt.Sprintf("field map key %v has no value", keysAndValues[len(keysAndValues)-1])})
	}
	var m FieldMap
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			panic(&ConfigurationError{Message: fmt.Sprintf("field map key %v (%T) is not a string", keysAndValues[i], keysAndValues[i])})
		}
		m.Set(key, keysAndValues[i+1])
	}
	return m
}

// ToValue converts an arbitrary Go value to an ldvalue.Value. Values that are already
// ldvalue types are used as they are; an undefined OptionalString becomes null.
func ToValue(v interface{}) ldvalue.Value {
	switch x := v.(type) {
	case ldvalue.Value:
		return x
	case ldvalue.OptionalString:
		if !x.IsDefined() {
			return ldvalue.Null()
		}
		return ldvalue.String(x.StringValue())
	case ldvalue.OptionalInt:
		if !x.IsDefined() {
			return ldvalue.Null()
		}
		return ldvalue.Int(x.IntValue())
	case json.RawMessage:
		var parsed ldvalue.Value
		if err := json.Unmarshal(x, &parsed); err != nil {
			return ldvalue.Null()
		}
		return parsed
	default:
		return ldvalue.CopyArbitraryValue(v)
	}
}

// Set adds or replaces a field. Replacing keeps the field's original position.
func (m *FieldMap) Set(key string, value interface{}) {
	if m.values == nil {
		m.values = make(map[string]ldvalue.Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = ToValue(value)
}

// Get returns the value of a field, and false if the field is absent. A field that was
// explicitly set to null is present.
func (m FieldMap) Get(key string) (ldvalue.Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Value returns the value of a field, or null if it is absent.
func (m FieldMap) Value(key string) ldvalue.Value {
	return m.values[key]
}

// Delete removes a field if present.
func (m *FieldMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the field names in order.
func (m FieldMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m FieldMap) Len() int {
	return len(m.keys)
}

// Clone returns an independent copy.
func (m FieldMap) Clone() FieldMap {
	var ret FieldMap
	for _, k := range m.keys {
		ret.Set(k, m.values[k])
	}
	return ret
}

// With returns a copy with the fields of other set on top of this map's fields.
func (m FieldMap) With(other FieldMap) FieldMap {
	ret := m.Clone()
	for _, k := range other.keys {
		ret.Set(k, other.values[k])
	}
	return ret
}

// AsValue returns the fields as a JSON object keyed by logical name.
func (m FieldMap) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuildWithCapacity(len(m.keys))
	for _, k := range m.keys {
		b.Set(k, m.values[k])
	}
	return b.Build()
}

// FieldMapFromValue converts a JSON object back to a FieldMap, with the keys sorted. It
// returns false if the value is not an object.
func FieldMapFromValue(v ldvalue.Value) (FieldMap, bool) {
	if v.Type() != ldvalue.ObjectType {
		return FieldMap{}, false
	}
	keys := v.Keys()
	sort.Strings(keys)
	var ret FieldMap
	for _, k := range keys {
		ret.Set(k, v.GetByKey(k))
	}
	return ret, true
}

func (m FieldMap) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, k+"="+m.values[k].JSONString())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldSchema lists the logical field names that a resource recognizes, and the name
// each one has in the JSON wire format.
type FieldSchema struct {
	Resource string
	Fields   []SchemaField
}

type SchemaField struct {
	Name     string
	WireName string
}

// WireName returns the JSON property name for a logical field name, and false if the
// schema does not define the field.
func (s FieldSchema) WireName(name string) (string, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			if f.WireName == "" {
				return f.Name, true
			}
			return f.WireName, true
		}
	}
	return "", false
}

// Validate returns an UnrecognizedFieldError if the map has any key the schema does not
// define.
func (s FieldSchema) Validate(m FieldMap) error {
	var unknown []string
	for _, k := range m.keys {
		if _, ok := s.WireName(k); !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return &UnrecognizedFieldError{Resource: s.Resource, Fields: unknown}
	}
	return nil
}

// FromWire converts a field map keyed by wire names, such as one loaded from a fixture
// file, to one keyed by logical names. Order is preserved.
func (s FieldSchema) FromWire(m FieldMap) (FieldMap, error) {
	var ret FieldMap
	var unknown []string
	for _, k := range m.keys {
		name, ok := s.logicalName(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		ret.Set(name, m.values[k])
	}
	if len(unknown) > 0 {
		return FieldMap{}, &UnrecognizedFieldError{Resource: s.Resource, Fields: unknown}
	}
	return ret, nil
}

func (s FieldSchema) logicalName(wire string) (string, bool) {
	for _, f := range s.Fields {
		if f.WireName == wire || (f.WireName == "" && f.Name == wire) {
			return f.Name, true
		}
	}
	return "", false
}

// Encode serializes the fields that are present in the map as a JSON object, using the
// wire names and the map's key order. Absent fields are omitted rather than written as
// null.
func (s FieldSchema) Encode(m FieldMap) ([]byte, error) {
	if err := s.Validate(m); err != nil {
		return nil, err
	}
	var buf strings.Builder
	buf.WriteByte('{')
	for i, k := range m.keys {
		wire, _ := s.WireName(k)
		name, err := json.Marshal(wire)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return []byte(buf.String()), nil
}
