// Package record converts between raw source records, stored rows and API payloads.
// All JSON blob encoding and decoding of nested structures happens here.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gorm.io/datatypes"
)

// Raw is one undecoded source record. Every accessor is total: a missing or
// mistyped field yields the zero value instead of an error.
type Raw map[string]json.RawMessage

// ParseRaw decodes a single JSON object.
func ParseRaw(data []byte) (Raw, error) {
	var r Raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("not a JSON object")
	}
	return r, nil
}

// ParseRecords decodes a JSON document holding either one object or an array of objects.
func ParseRecords(data []byte) ([]Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var rs []Raw
		if err := json.Unmarshal(data, &rs); err != nil {
			return nil, err
		}
		return rs, nil
	}

	r, err := ParseRaw(data)
	if err != nil {
		return nil, err
	}
	return []Raw{r}, nil
}

// KeyedRecords decodes a dataset that is either an array of objects or an
// object keyed by id. For the keyed form the key fills in a missing "id";
// records come back sorted by key so ingestion order is stable.
func KeyedRecords(data []byte) ([]Raw, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return ParseRecords(data)
	}

	var keyed map[string]Raw
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Raw, 0, len(keys))
	for _, k := range keys {
		r := keyed[k]
		if r == nil {
			r = Raw{}
		}
		if r.String("id") == "" {
			id, _ := json.Marshal(k)
			r["id"] = id
		}
		out = append(out, r)
	}
	return out, nil
}

func isNull(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) == 0 || bytes.Equal(v, []byte("null"))
}

// Has reports whether key is present with a non-null value.
func (r Raw) Has(key string) bool {
	v, ok := r[key]
	return ok && !isNull(v)
}

// String returns a string field. Number and boolean literals are returned as
// their JSON text, so loosely typed fields like hp survive either encoding.
func (r Raw) String(key string) string {
	v, ok := r[key]
	if !ok || isNull(v) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(v)
	switch trimmed[0] {
	case '{', '[':
		return ""
	}
	return string(trimmed)
}

// OptString is String but nil for absent, null or empty values.
func (r Raw) OptString(key string) *string {
	s := r.String(key)
	if s == "" {
		return nil
	}
	return &s
}

// Int returns an integer field, accepting numeric strings. Nil when absent or not a number.
func (r Raw) Int(key string) *int {
	s := r.String(key)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

// Float returns a float field, accepting numeric strings. Nil when absent or not a number.
func (r Raw) Float(key string) *float64 {
	s := r.String(key)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Bool applies Truthy to a field.
func (r Raw) Bool(key string) bool {
	return Truthy(r[key])
}

// Object returns a nested object field, or nil when absent or not an object.
func (r Raw) Object(key string) Raw {
	v, ok := r[key]
	if !ok || isNull(v) {
		return nil
	}
	var obj Raw
	if err := json.Unmarshal(v, &obj); err != nil {
		return nil
	}
	return obj
}

// List returns the field as a JSON array blob; anything that is not an array becomes [].
func (r Raw) List(key string) datatypes.JSON {
	v := bytes.TrimSpace(r[key])
	if len(v) == 0 || v[0] != '[' || !json.Valid(v) {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(bytes.Clone(v))
}

// Map returns the field as a JSON object blob; anything that is not an object becomes {}.
func (r Raw) Map(key string) datatypes.JSON {
	v := bytes.TrimSpace(r[key])
	if len(v) == 0 || v[0] != '{' || !json.Valid(v) {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(bytes.Clone(v))
}

// Extras collects every field not named in known as a JSON object blob.
func (r Raw) Extras(known map[string]bool) datatypes.JSON {
	extra := make(map[string]json.RawMessage)
	for k, v := range r {
		if !known[k] {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return datatypes.JSON("{}")
	}
	// Map keys are marshalled sorted, so the blob is deterministic
	b, err := json.Marshal(extra)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

// Truthy reports the truthiness of a JSON value: false, null, 0, "" and a
// missing value are false, anything else is true.
func Truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	if isNull(v) {
		return false
	}
	switch string(v) {
	case "false", `""`:
		return false
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil {
		return f != 0
	}
	return true
}

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// firstString returns the first non-empty string among keys.
func (r Raw) firstString(keys ...string) *string {
	for _, k := range keys {
		if s := r.OptString(k); s != nil {
			return s
		}
	}
	return nil
}

// firstPresent returns the first key holding a non-null value, or "" when
// none does. Reference datasets spell some fields more than one way.
func (r Raw) firstPresent(keys ...string) string {
	for _, k := range keys {
		if r.Has(k) {
			return k
		}
	}
	return ""
}
