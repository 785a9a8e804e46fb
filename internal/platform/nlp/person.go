package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

const (
	personLabel = "PERSON"
	warmUpText  = "Tom Hanks"
)

// ProseRecognizer finds person names with the prose named-entity model. The model is
// built once and shared by every call; it is not safe for concurrent use.
type ProseRecognizer struct {
	log   *logger.Logger
	model *prose.Model
}

// NewProseRecognizer builds the tagger and entity model up front. If the warm-up
// document fails, each call falls back to building its own model.
func NewProseRecognizer(log *logger.Logger) *ProseRecognizer {
	r := &ProseRecognizer{log: log.With("component", "ProseRecognizer")}
	doc, err := prose.NewDocument(warmUpText, prose.WithSegmentation(false))
	if err != nil {
		r.log.Warn("Entity model warm-up failed", "error", err)
		return r
	}
	r.model = doc.Model
	return r
}

// People returns the PERSON entities of text in order of appearance. Text the model
// cannot process yields no names.
func (r *ProseRecognizer) People(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if r.model != nil {
		opts = append(opts, prose.UsingModel(r.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		r.log.Warn("Entity extraction failed", "error", err)
		return nil
	}
	var out []string
	for _, ent := range doc.Entities() {
		if ent.Label == personLabel {
			out = append(out, ent.Text)
		}
	}
	return out
}
