package services

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/movies-etl/internal/data/repos"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/domain/jobs"
	"github.com/yungbote/movies-etl/internal/etl/transform"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type SourceOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

type StagingLoader interface {
	Load(ctx context.Context, r io.Reader) (int, error)
}

type StagingCleaner interface {
	Clean(ctx context.Context) (int, error)
}

type Transformer interface {
	TransformAll(ctx context.Context) (transform.Stats, error)
}

type Migrator interface {
	AutoMigrateAll() error
}

// RunSummary is what a full run reports back to the caller.
type RunSummary struct {
	Loaded    int             `json:"loaded"`
	Cleaned   int             `json:"cleaned"`
	Transform transform.Stats `json:"transform"`
}

type PipelineService interface {
	InitDB(ctx context.Context) error
	Load(ctx context.Context, uri string) (int, error)
	Clean(ctx context.Context) (int, error)
	Transform(ctx context.Context) (transform.Stats, error)
	Run(ctx context.Context, uri string) (*RunSummary, error)
}

type pipelineService struct {
	log       *logger.Logger
	runs      repos.EtlRunRepo
	migrator  Migrator
	opener    SourceOpener
	loader    StagingLoader
	cleaner   StagingCleaner
	transform Transformer
	now       func() time.Time
}

func NewPipelineService(
	baseLog *logger.Logger,
	runs repos.EtlRunRepo,
	migrator Migrator,
	opener SourceOpener,
	loader StagingLoader,
	cleaner StagingCleaner,
	transformer Transformer,
) PipelineService {
	return &pipelineService{
		log:       baseLog.With("service", "PipelineService"),
		runs:      runs,
		migrator:  migrator,
		opener:    opener,
		loader:    loader,
		cleaner:   cleaner,
		transform: transformer,
		now:       time.Now,
	}
}

// stageResult carries the counters written to the audit row.
type stageResult struct {
	records  int
	movies   int
	entities int
	links    int
	detail   any
}

// InitDB creates the schema and tables. The audit row can only be written once the
// etl_run table exists, so it is recorded after migration.
func (s *pipelineService) InitDB(ctx context.Context) error {
	return s.track(ctx, jobs.StageInit, "", func(ctx context.Context) (stageResult, error) {
		if s.migrator == nil {
			return stageResult{}, etlerr.New(etlerr.CodeConfig, "pipeline.init_db", "no migrator configured", nil)
		}
		if err := s.migrator.AutoMigrateAll(); err != nil {
			return stageResult{}, etlerr.Wrap(etlerr.CodePersistence, "pipeline.init_db", err)
		}
		return stageResult{}, nil
	})
}

func (s *pipelineService) Load(ctx context.Context, uri string) (int, error) {
	var n int
	err := s.track(ctx, jobs.StageLoad, uri, func(ctx context.Context) (stageResult, error) {
		rc, err := s.opener.Open(ctx, uri)
		if err != nil {
			return stageResult{}, err
		}
		defer rc.Close()
		n, err = s.loader.Load(ctx, rc)
		if err != nil {
			return stageResult{}, err
		}
		return stageResult{records: n}, nil
	})
	return n, err
}

func (s *pipelineService) Clean(ctx context.Context) (int, error) {
	var n int
	err := s.track(ctx, jobs.StageClean, "", func(ctx context.Context) (stageResult, error) {
		var err error
		n, err = s.cleaner.Clean(ctx)
		if err != nil {
			return stageResult{}, err
		}
		return stageResult{records: n}, nil
	})
	return n, err
}

func (s *pipelineService) Transform(ctx context.Context) (transform.Stats, error) {
	var stats transform.Stats
	err := s.track(ctx, jobs.StageTransform, "", func(ctx context.Context) (stageResult, error) {
		var err error
		stats, err = s.transform.TransformAll(ctx)
		if err != nil {
			return stageResult{}, err
		}
		return statsResult(stats), nil
	})
	return stats, err
}

// Run creates missing tables, then executes load, clean and transform in order,
// stopping at the first failure.
func (s *pipelineService) Run(ctx context.Context, uri string) (*RunSummary, error) {
	if s.migrator != nil {
		if err := s.InitDB(ctx); err != nil {
			return nil, err
		}
	}
	out := &RunSummary{}
	err := s.track(ctx, jobs.StageRun, uri, func(ctx context.Context) (stageResult, error) {
		var err error
		if out.Loaded, err = s.Load(ctx, uri); err != nil {
			return stageResult{}, err
		}
		if out.Cleaned, err = s.Clean(ctx); err != nil {
			return stageResult{}, err
		}
		if out.Transform, err = s.Transform(ctx); err != nil {
			return stageResult{}, err
		}
		res := statsResult(out.Transform)
		res.detail = out
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func statsResult(stats transform.Stats) stageResult {
	return stageResult{
		records:  stats.Records,
		movies:   stats.MoviesCreated + stats.MoviesUpdated,
		entities: stats.EntitiesCreated,
		links:    stats.LinksCreated,
		detail:   stats,
	}
}

// track wraps one stage in a span and an etl_run audit row. Audit writes happen outside
// the stage's own transaction and never change the stage's outcome.
func (s *pipelineService) track(ctx context.Context, stage, source string, fn func(ctx context.Context) (stageResult, error)) (err error) {
	ctx, span := observability.StartSpan(ctx, "pipeline."+stage, attribute.String("source", source))
	defer func() { observability.EndSpan(span, err) }()

	log := s.log.With("stage", stage)
	if source != "" {
		log = log.With("source", source)
	}
	log.Info("Stage started")

	run := s.startRun(ctx, log, stage, source)
	res, err := fn(ctx)
	s.finishRun(ctx, log, run, stage, source, res, err)

	if err != nil {
		log.Error("Stage failed", "error", err)
		return err
	}
	log.Info("Stage finished", "records", res.records)
	return nil
}

func (s *pipelineService) startRun(ctx context.Context, log *logger.Logger, stage, source string) *types.EtlRun {
	if s.runs == nil || stage == jobs.StageInit {
		return nil
	}
	run := &types.EtlRun{
		Stage:     stage,
		Status:    jobs.StatusRunning,
		Source:    source,
		StartedAt: s.now().UTC(),
	}
	if _, err := s.runs.Create(dbctx.Context{Ctx: ctx}, []*types.EtlRun{run}); err != nil {
		log.Warn("Could not record stage start", "error", err)
		return nil
	}
	return run
}

func (s *pipelineService) finishRun(ctx context.Context, log *logger.Logger, run *types.EtlRun, stage, source string, res stageResult, stageErr error) {
	if s.runs == nil {
		return
	}
	finished := s.now().UTC()
	status := jobs.StatusSucceeded
	errText := ""
	if stageErr != nil {
		status = jobs.StatusFailed
		errText = stageErr.Error()
	}
	var result datatypes.JSON
	if res.detail != nil {
		if b, err := json.Marshal(res.detail); err == nil {
			result = datatypes.JSON(b)
		} else {
			log.Warn("Could not encode stage result", "error", err)
		}
	}

	dbc := dbctx.Context{Ctx: ctx}
	if run == nil {
		// start row missing: write the whole record in one go
		run = &types.EtlRun{
			Stage:           stage,
			Status:          status,
			Source:          source,
			Records:         res.records,
			Movies:          res.movies,
			EntitiesCreated: res.entities,
			LinksCreated:    res.links,
			Result:          result,
			Error:           errText,
			StartedAt:       finished,
			FinishedAt:      &finished,
		}
		if _, err := s.runs.Create(dbc, []*types.EtlRun{run}); err != nil {
			log.Warn("Could not record stage", "error", err)
		}
		return
	}

	updates := map[string]interface{}{
		"status":           status,
		"records":          res.records,
		"movies":           res.movies,
		"entities_created": res.entities,
		"links_created":    res.links,
		"error":            errText,
		"finished_at":      finished,
	}
	if result != nil {
		updates["result"] = result
	}
	if err := s.runs.UpdateFields(dbc, run.ID, updates); err != nil {
		log.Warn("Could not record stage finish", "error", err)
	}
}
