package transform

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/repos"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/etl/link"
	"github.com/yungbote/movies-etl/internal/etl/pipeline"
	"github.com/yungbote/movies-etl/internal/etl/resolve"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type RelationStats struct {
	Items           int `json:"items"`
	EntitiesCreated int `json:"entities_created"`
	LinksCreated    int `json:"links_created"`
}

// Stats summarizes one committed batch.
type Stats struct {
	Records         int                                `json:"records"`
	MoviesCreated   int                                `json:"movies_created"`
	MoviesUpdated   int                                `json:"movies_updated"`
	EntitiesCreated int                                `json:"entities_created"`
	LinksCreated    int                                `json:"links_created"`
	Relations       map[movies.Relation]*RelationStats `json:"relations"`
}

func newStats() Stats {
	return Stats{Relations: map[movies.Relation]*RelationStats{}}
}

type relationStep struct {
	cfg   pipeline.RelationConfig
	parse parseFunc
	raw   func(*types.StagingMovie) string
}

// Service turns cleaned staging rows into movies, relation entities and links.
type Service struct {
	log      *logger.Logger
	tx       aggregates.TxRunner
	staging  repos.StagingRepo
	movies   repos.MovieRepo
	resolver *resolve.Resolver
	linker   *link.Linker

	progressEvery int
	steps         []relationStep
}

func NewService(
	log *logger.Logger,
	tx aggregates.TxRunner,
	staging repos.StagingRepo,
	movieRepo repos.MovieRepo,
	resolver *resolve.Resolver,
	linker *link.Linker,
	p *pipeline.Pipeline,
	recognizer fields.PersonRecognizer,
) (*Service, error) {
	if p == nil {
		p = pipeline.Default()
	}
	steps := make([]relationStep, 0, len(p.Relations))
	for _, rs := range p.Relations {
		parse, err := parserFor(rs.Parser, p, recognizer)
		if err != nil {
			return nil, err
		}
		b, _ := movies.BindingFor(rs.Relation)
		steps = append(steps, relationStep{cfg: rs, parse: parse, raw: b.Raw})
	}
	progressEvery := p.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = pipeline.DefaultProgressEvery
	}
	return &Service{
		log:           log.With("service", "TransformService"),
		tx:            tx,
		staging:       staging,
		movies:        movieRepo,
		resolver:      resolver,
		linker:        linker,
		progressEvery: progressEvery,
		steps:         steps,
	}, nil
}

// TransformAll reads every staging row, ordered by id, and transforms them as one batch.
func (s *Service) TransformAll(ctx context.Context) (Stats, error) {
	rows, err := s.staging.GetAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return Stats{}, aggregates.MapError("transform.read_staging", err)
	}
	return s.Transform(ctx, rows)
}

// Transform processes rows inside a single transaction. Any failure rolls back the
// whole batch and no stats are returned.
func (s *Service) Transform(ctx context.Context, rows []*types.StagingMovie) (stats Stats, err error) {
	ctx, span := observability.StartSpan(ctx, "transform.batch", attribute.Int("records", len(rows)))
	defer func() { observability.EndSpan(span, err) }()

	out := newStats()
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		for i, sm := range rows {
			if sm == nil {
				continue
			}
			if err := s.transformOne(dbc, sm, &out); err != nil {
				return err
			}
			out.Records++
			if (i+1)%s.progressEvery == 0 {
				s.log.Info("Transformed movies", "count", i+1, "total", len(rows))
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error("Transform batch rolled back", "error", err)
		return Stats{}, err
	}
	s.log.Info("Transform batch committed",
		"records", out.Records,
		"movies_created", out.MoviesCreated,
		"movies_updated", out.MoviesUpdated,
		"entities_created", out.EntitiesCreated,
		"links_created", out.LinksCreated,
	)
	return out, nil
}

func (s *Service) transformOne(dbc dbctx.Context, sm *types.StagingMovie, stats *Stats) error {
	m, err := s.movies.GetByID(dbc, sm.ID)
	if err != nil {
		return aggregates.MapError("transform.load_movie", err)
	}
	created := m == nil
	if created {
		m = &types.Movie{ID: sm.ID}
	}
	if err := applyScalars(m, sm); err != nil {
		return err
	}
	if created {
		err = s.movies.Create(dbc, m)
		stats.MoviesCreated++
	} else {
		err = s.movies.Save(dbc, m)
		stats.MoviesUpdated++
	}
	if err != nil {
		return aggregates.MapError("transform.save_movie", err)
	}

	for _, step := range s.steps {
		rel := step.cfg.Relation
		items := slices.Collect(step.parse(step.raw(sm)))
		res, err := s.resolver.Resolve(dbc, rel, items, step.cfg.LookupKeys)
		if err != nil {
			return err
		}

		rs := stats.Relations[rel]
		if rs == nil {
			rs = &RelationStats{}
			stats.Relations[rel] = rs
		}
		rs.Items += len(items)
		rs.EntitiesCreated += res.Created
		stats.EntitiesCreated += res.Created

		seen := link.Seen{}
		for _, id := range res.IDs {
			if !seen.Add(id) {
				continue
			}
			linked, err := s.linker.Link(dbc, rel, m.ID, id)
			if err != nil {
				return err
			}
			if linked {
				rs.LinksCreated++
				stats.LinksCreated++
			}
		}
	}
	return nil
}
