package app

import (
	"fmt"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/db"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/etl/link"
	"github.com/yungbote/movies-etl/internal/etl/pipeline"
	"github.com/yungbote/movies-etl/internal/etl/resolve"
	"github.com/yungbote/movies-etl/internal/etl/transform"
	"github.com/yungbote/movies-etl/internal/ingestion/source"
	"github.com/yungbote/movies-etl/internal/ingestion/staging"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
	"github.com/yungbote/movies-etl/internal/platform/nlp"
	"github.com/yungbote/movies-etl/internal/services"
)

var _ fields.PersonRecognizer = (*nlp.ProseRecognizer)(nil)

type Services struct {
	Opener    *source.Opener
	Loader    *staging.Loader
	Cleaner   *staging.Cleaner
	Transform *transform.Service
	Pipeline  services.PipelineService
}

func wireServices(store *db.Service, log *logger.Logger, reposet Repos, recognizer fields.PersonRecognizer) (Services, error) {
	log.Info("Wiring services...")

	tx := aggregates.NewGormTxRunner(store.DB())
	if recognizer == nil {
		recognizer = nlp.NewProseRecognizer(log)
	}

	transformer, err := transform.NewService(
		log,
		tx,
		reposet.Staging,
		reposet.Movie,
		resolve.New(reposet.Entity, log),
		link.New(reposet.Link, log),
		pipeline.Load(log),
		recognizer,
	)
	if err != nil {
		return Services{}, fmt.Errorf("init transform service: %w", err)
	}

	opener := source.NewOpener(log)
	loader := staging.NewLoader(log, tx, reposet.Staging)
	cleaner := staging.NewCleaner(log, tx, reposet.Staging)

	return Services{
		Opener:    opener,
		Loader:    loader,
		Cleaner:   cleaner,
		Transform: transformer,
		Pipeline:  services.NewPipelineService(log, reposet.EtlRun, store, opener, loader, cleaner, transformer),
	}, nil
}
