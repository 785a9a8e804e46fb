package transform

import (
	"fmt"
	"iter"

	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/etl/pipeline"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
)

type parseFunc func(raw string) iter.Seq[fields.Item]

func parserFor(kind pipeline.ParserKind, p *pipeline.Pipeline, recognizer fields.PersonRecognizer) (parseFunc, error) {
	switch kind {
	case pipeline.ParserGenres:
		return fields.NewGenreParser(p.Compounds).Parse, nil
	case pipeline.ParserKeywords:
		return fields.Keywords, nil
	case pipeline.ParserCast:
		if recognizer == nil {
			return nil, etlerr.New(etlerr.CodeConfig, "transform.parsers", "cast parser requires a person recognizer", nil)
		}
		return fields.CastParser{Recognizer: recognizer}.Parse, nil
	case pipeline.ParserJSON:
		return fields.Structured, nil
	default:
		return nil, etlerr.New(etlerr.CodeConfig, "transform.parsers", fmt.Sprintf("unknown parser %q", kind), nil)
	}
}
