package pipeline

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

const (
	PipelineName = "movies_etl"
	PipelineEnv  = "MOVIES_ETL_PIPELINE_YAML"

	DefaultProgressEvery = 100
)

//go:embed movies_etl.yaml
var definitionFS embed.FS

// ParserKind selects how a relation's staging column is split into items.
type ParserKind string

const (
	ParserGenres   ParserKind = "genres"
	ParserKeywords ParserKind = "keywords"
	ParserCast     ParserKind = "cast"
	ParserJSON     ParserKind = "json"
)

// RelationConfig configures one normalized relation.
type RelationConfig struct {
	Relation   movies.Relation
	Parser     ParserKind
	LookupKeys []string
}

// Pipeline is the validated runtime form of movies_etl.yaml.
type Pipeline struct {
	Name          string
	Version       int
	ProgressEvery int
	Compounds     map[fields.Pair]string
	Relations     []RelationConfig
}

type yamlPipeline struct {
	Pipeline       string               `yaml:"pipeline"`
	Version        int                  `yaml:"version"`
	ProgressEvery  int                  `yaml:"progress_every"`
	CompoundGenres []yamlCompound       `yaml:"compound_genres"`
	Relations      []yamlRelationConfig `yaml:"relations"`
}

type yamlCompound struct {
	Tokens []string `yaml:"tokens"`
	Label  string   `yaml:"label"`
}

type yamlRelationConfig struct {
	Name       string   `yaml:"name"`
	Parser     string   `yaml:"parser"`
	LookupKeys []string `yaml:"lookup_keys"`
	Enabled    *bool    `yaml:"enabled"`
}

// Default is the built-in pipeline used when the YAML cannot be loaded.
func Default() *Pipeline {
	return &Pipeline{
		Name:          PipelineName,
		Version:       1,
		ProgressEvery: DefaultProgressEvery,
		Compounds:     fields.DefaultCompounds(),
		Relations: []RelationConfig{
			{Relation: movies.RelationGenres, Parser: ParserGenres},
			{Relation: movies.RelationKeywords, Parser: ParserKeywords},
			{Relation: movies.RelationCast, Parser: ParserCast},
			{Relation: movies.RelationCrew, Parser: ParserJSON, LookupKeys: []string{"id"}},
			{Relation: movies.RelationProductionCompanies, Parser: ParserJSON, LookupKeys: []string{"id"}},
			{Relation: movies.RelationProductionCountries, Parser: ParserJSON, LookupKeys: []string{"iso_3166_1"}},
			{Relation: movies.RelationSpokenLanguages, Parser: ParserJSON, LookupKeys: []string{"iso_639_1"}},
		},
	}
}

// Load reads the pipeline from MOVIES_ETL_PIPELINE_YAML or the embedded file. Any read
// or validation failure is logged and the built-in default is returned.
func Load(log *logger.Logger) *Pipeline {
	data, err := readDefinition()
	if err == nil {
		var p *Pipeline
		if p, err = Parse(data); err == nil {
			return p
		}
	}
	if log != nil {
		log.Warn("movies_etl: pipeline definition load failed; using fallback", "error", err)
	}
	return Default()
}

func readDefinition() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(PipelineEnv)); path != "" {
		return os.ReadFile(path)
	}
	return definitionFS.ReadFile("movies_etl.yaml")
}

// Parse decodes and validates a pipeline YAML document.
func Parse(data []byte) (*Pipeline, error) {
	var def yamlPipeline
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := validatePipeline(&def); err != nil {
		return nil, err
	}

	p := &Pipeline{
		Name:          def.Pipeline,
		Version:       def.Version,
		ProgressEvery: def.ProgressEvery,
		Compounds:     map[fields.Pair]string{},
	}
	if p.ProgressEvery == 0 {
		p.ProgressEvery = DefaultProgressEvery
	}
	for _, c := range def.CompoundGenres {
		p.Compounds[fields.Pair{strings.TrimSpace(c.Tokens[0]), strings.TrimSpace(c.Tokens[1])}] = strings.TrimSpace(c.Label)
	}
	for _, rel := range def.Relations {
		if rel.Enabled != nil && !*rel.Enabled {
			continue
		}
		p.Relations = append(p.Relations, RelationConfig{
			Relation:   movies.Relation(strings.TrimSpace(rel.Name)),
			Parser:     ParserKind(strings.TrimSpace(rel.Parser)),
			LookupKeys: trimAll(rel.LookupKeys),
		})
	}
	return p, nil
}

func validatePipeline(def *yamlPipeline) error {
	if def == nil {
		return errors.New("missing pipeline definition")
	}
	if strings.TrimSpace(def.Pipeline) != PipelineName {
		return fmt.Errorf("unexpected pipeline: %s", def.Pipeline)
	}
	if def.ProgressEvery < 0 {
		return fmt.Errorf("progress_every must be >= 0, got %d", def.ProgressEvery)
	}
	if len(def.Relations) == 0 {
		return errors.New("no relations defined")
	}

	for i, c := range def.CompoundGenres {
		if len(c.Tokens) != 2 {
			return fmt.Errorf("compound_genres[%d]: expected 2 tokens, got %d", i, len(c.Tokens))
		}
		if strings.TrimSpace(c.Tokens[0]) == "" || strings.TrimSpace(c.Tokens[1]) == "" {
			return fmt.Errorf("compound_genres[%d]: empty token", i)
		}
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("compound_genres[%d]: label is required", i)
		}
	}

	seen := map[string]bool{}
	for _, rel := range def.Relations {
		name := strings.TrimSpace(rel.Name)
		if name == "" {
			return errors.New("relation name is required")
		}
		if seen[name] {
			return fmt.Errorf("duplicate relation: %s", name)
		}
		seen[name] = true
		if _, ok := movies.BindingFor(movies.Relation(name)); !ok {
			return fmt.Errorf("unknown relation: %s", name)
		}
		switch ParserKind(strings.TrimSpace(rel.Parser)) {
		case ParserGenres, ParserKeywords, ParserCast:
		case ParserJSON:
			if len(trimAll(rel.LookupKeys)) == 0 {
				return fmt.Errorf("relation %s: json parser requires lookup_keys", name)
			}
		default:
			return fmt.Errorf("relation %s: unknown parser %q", name, rel.Parser)
		}
	}
	return nil
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
