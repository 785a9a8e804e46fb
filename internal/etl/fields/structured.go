package fields

import (
	"bytes"
	"encoding/json"
	"iter"
	"strings"
)

// Structured parses a JSON-like array of objects. Single quotes are rewritten to double
// quotes before decoding, which corrupts values containing apostrophes; such inputs
// usually fail to decode and yield nothing. Blank or undecodable input yields nothing,
// a bare object yields one record and non-object array elements are skipped.
func Structured(raw string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, rec := range decodeRecords(raw) {
			if !yield(RecordItem(rec)) {
				return
			}
		}
	}
}

func decodeRecords(raw string) []map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	repaired := strings.ReplaceAll(raw, "'", `"`)

	dec := json.NewDecoder(bytes.NewReader([]byte(repaired)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	if dec.More() {
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, el := range t {
			if rec, ok := el.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}
