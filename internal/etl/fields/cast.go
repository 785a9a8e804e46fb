package fields

import (
	"iter"
	"strings"
)

// PersonRecognizer extracts person names from free text in order of appearance.
type PersonRecognizer interface {
	People(text string) []string
}

// CastParser keeps recognized person names, trimmed and deduplicated by exact string in
// first-seen order. Output quality depends on the recognizer.
type CastParser struct {
	Recognizer PersonRecognizer
}

func (p CastParser) Parse(raw string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		if p.Recognizer == nil || strings.TrimSpace(raw) == "" {
			return
		}
		seen := map[string]struct{}{}
		for _, name := range p.Recognizer.People(raw) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			if !yield(NameItem(name)) {
				return
			}
		}
	}
}
