package resolve

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/repos"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// Result is the outcome of one Resolve call.
type Result struct {
	IDs     []int64
	Created int
}

// Resolver maps parsed items to entity ids, inserting entities that do not exist yet.
// Inserts go through the caller's transaction so later lookups in the same batch see them.
type Resolver struct {
	entities repos.EntityRepo
	log      *logger.Logger
}

func New(entities repos.EntityRepo, log *logger.Logger) *Resolver {
	return &Resolver{entities: entities, log: log.With("component", "Resolver")}
}

// Resolve returns one id per item, in input order. Bare names are matched on the name
// column; records are matched on lookupKeys, which must be non-empty.
func (r *Resolver) Resolve(dbc dbctx.Context, rel movies.Relation, items []fields.Item, lookupKeys []string) (Result, error) {
	const op = "resolve"
	b, ok := movies.BindingFor(rel)
	if !ok {
		return Result{}, etlerr.New(etlerr.CodeConfig, op, fmt.Sprintf("unknown relation %q", rel), nil)
	}

	res := Result{IDs: make([]int64, 0, len(items))}
	for _, item := range items {
		filter, err := lookupFilter(rel, item, lookupKeys)
		if err != nil {
			return Result{}, err
		}

		id, found, err := r.entities.FindID(dbc, b.EntityTable, filter)
		if err != nil {
			return Result{}, aggregates.MapError(op+"."+string(rel), err)
		}
		if !found {
			ent, err := buildEntity(b, item)
			if err != nil {
				return Result{}, err
			}
			if id, err = r.entities.Create(dbc, ent); err != nil {
				return Result{}, aggregates.MapError(op+"."+string(rel), err)
			}
			res.Created++
			r.log.Debug("Entity created", "relation", rel, "id", id)
		}
		res.IDs = append(res.IDs, id)
	}
	return res, nil
}

func lookupFilter(rel movies.Relation, item fields.Item, lookupKeys []string) (map[string]interface{}, error) {
	const op = "resolve.lookup"
	if !item.IsRecord() {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, etlerr.New(etlerr.CodeValidation, op, fmt.Sprintf("%s: empty name", rel), nil)
		}
		return map[string]interface{}{"name": name}, nil
	}
	if len(lookupKeys) == 0 {
		return nil, etlerr.New(etlerr.CodeConfig, op, fmt.Sprintf("%s: structured items need lookup keys", rel), nil)
	}
	filter := make(map[string]interface{}, len(lookupKeys))
	for _, key := range lookupKeys {
		v, ok := item.Value(key)
		if !ok || v == nil {
			return nil, etlerr.New(etlerr.CodeValidation, op, fmt.Sprintf("%s: record missing lookup field %q", rel, key), nil)
		}
		filter[key] = normalize(v)
	}
	return filter, nil
}

// normalize turns decoded JSON numbers into int64 or float64 so they bind as numbers.
func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// buildEntity fills a new entity row from all known fields of item.
func buildEntity(b movies.Binding, item fields.Item) (types.Entity, error) {
	ent := b.NewEntity()
	if !item.IsRecord() {
		switch e := ent.(type) {
		case *types.Genre:
			e.Name = item.Name
		case *types.Keyword:
			e.Name = item.Name
		case *types.CastMember:
			e.Name = item.Name
		default:
			return nil, etlerr.New(etlerr.CodeConfig, "resolve.build", fmt.Sprintf("%s expects structured items", b.Relation), nil)
		}
		return ent, nil
	}

	str := func(key string) string {
		s, _ := item.String(key)
		return s
	}
	switch e := ent.(type) {
	case *types.Genre:
		e.Name = str("name")
	case *types.Keyword:
		e.Name = str("name")
	case *types.CastMember:
		e.Name = str("name")
	case *types.Crew:
		e.ID, _ = item.Int64("id")
		e.Name = str("name")
		if g, ok := item.Int("gender"); ok {
			e.Gender = &g
		}
		e.Department = str("department")
		e.Job = str("job")
		e.CreditID = str("credit_id")
	case *types.ProductionCompany:
		e.ID, _ = item.Int64("id")
		e.Name = str("name")
	case *types.ProductionCountry:
		e.ISO31661 = str("iso_3166_1")
		e.Name = str("name")
	case *types.SpokenLanguage:
		e.ISO6391 = str("iso_639_1")
		e.Name = str("name")
	}
	return ent, nil
}
