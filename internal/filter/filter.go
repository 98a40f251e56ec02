// Package filter holds the active search filters for a session.
package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Sentinels are filter values that mean "no filter". Storing one removes the
// entry instead, so the set only ever contains effective filters.
var Sentinels = []string{"any", "all"}

// Set is a mutable collection of filter key/value pairs. The zero value is
// not usable; create one with New. Not safe for concurrent use; the engine
// serializes access.
type Set struct {
	values map[string]interface{}
}

// New returns an empty filter set.
func New() *Set {
	return &Set{values: make(map[string]interface{})}
}

// FromMap returns a set populated from m, applying the same sentinel rules
// as Set for each entry.
func FromMap(m map[string]interface{}) *Set {
	s := New()
	for k, v := range m {
		s.Set(k, v)
	}
	return s
}

// Set stores value under key. Empty, zero, false, and sentinel values remove
// the key instead, so callers can pass UI state through unconditionally.
func (s *Set) Set(key string, value interface{}) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if isInactive(value) {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Set) Get(key string) (interface{}, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Active reports whether any filter is set.
func (s *Set) Active() bool {
	return len(s.values) > 0
}

// Len returns the number of active filters.
func (s *Set) Len() int {
	return len(s.values)
}

// Clear removes all filters.
func (s *Set) Clear() {
	s.values = make(map[string]interface{})
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := New()
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Map returns a copy of the filters for display and serialization.
func (s *Set) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}

// Canonical returns a deterministic serialization of the set: entries sorted
// by key, joined as key=value pairs. Two sets with the same effective
// filters always produce the same canonical form, which makes it usable as
// epoch-key and request-key material.
func (s *Set) Canonical() string {
	if len(s.values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+stringify(s.values[k]))
	}
	return strings.Join(parts, "&")
}

// Params returns the filters as URL query values for the keyword provider.
func (s *Set) Params() url.Values {
	params := url.Values{}
	for k, v := range s.values {
		params.Set(k, stringify(v))
	}
	return params
}

// isInactive reports whether value means "no filter": nil, empty or sentinel
// strings, zero numbers, false, or an empty slice.
func isInactive(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			return true
		}
		for _, sentinel := range Sentinels {
			if strings.EqualFold(t, sentinel) {
				return true
			}
		}
		return false
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case []string:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// stringify renders a filter value the way the provider expects it on the
// wire. Slices become comma-separated lists.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ",")
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
