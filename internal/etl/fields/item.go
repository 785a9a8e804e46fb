package fields

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Item is one parsed value of a relation field: either a bare name (genres, keywords,
// cast) or a decoded record (crew, companies, countries, languages).
type Item struct {
	Name   string
	Record map[string]any
}

func NameItem(name string) Item { return Item{Name: name} }

func RecordItem(rec map[string]any) Item { return Item{Record: rec} }

func (i Item) IsRecord() bool { return i.Record != nil }

// Value returns the raw decoded value for key.
func (i Item) Value(key string) (any, bool) {
	if i.Record == nil {
		return nil, false
	}
	v, ok := i.Record[key]
	return v, ok
}

func (i Item) String(key string) (string, bool) {
	v, ok := i.Value(key)
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func (i Item) Int64(key string) (int64, bool) {
	v, ok := i.Value(key)
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (i Item) Int(key string) (int, bool) {
	n, ok := i.Int64(key)
	if !ok {
		return 0, false
	}
	return int(n), true
}
