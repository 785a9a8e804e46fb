package fields

import (
	"iter"
	"strings"
)

// Pair is a two-token key into the compound genre table.
type Pair [2]string

// DefaultCompounds is the built-in table of two-word genre labels.
func DefaultCompounds() map[Pair]string {
	return map[Pair]string{
		{"Science", "Fiction"}: "Science Fiction",
		{"TV", "Movie"}:        "TV Movie",
		{"Film", "Noir"}:       "Film Noir",
		{"Dark", "Fantasy"}:    "Dark Fantasy",
		{"Martial", "Arts"}:    "Martial Arts",
		{"Reality", "TV"}:      "Reality TV",
	}
}

// GenreParser splits a whitespace separated genre list, joining known two-word labels.
type GenreParser struct {
	Compounds map[Pair]string
}

func NewGenreParser(compounds map[Pair]string) GenreParser {
	if compounds == nil {
		compounds = DefaultCompounds()
	}
	return GenreParser{Compounds: compounds}
}

// Parse scans tokens left to right; when the current and next token form a known
// pair the combined label is emitted and both are consumed.
func (p GenreParser) Parse(raw string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		tokens := strings.Fields(raw)
		for i := 0; i < len(tokens); i++ {
			if i+1 < len(tokens) {
				if label, ok := p.Compounds[Pair{tokens[i], tokens[i+1]}]; ok {
					if !yield(NameItem(label)) {
						return
					}
					i++
					continue
				}
			}
			if !yield(NameItem(tokens[i])) {
				return
			}
		}
	}
}

// Genres parses raw with the default compound table.
func Genres(raw string) iter.Seq[Item] {
	return NewGenreParser(nil).Parse(raw)
}

// Keywords splits raw on whitespace.
func Keywords(raw string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, tok := range strings.Fields(raw) {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if !yield(NameItem(tok)) {
				return
			}
		}
	}
}
