package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/movies-etl/internal/data/repos"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type Repos struct {
	Staging repos.StagingRepo
	Movie   repos.MovieRepo
	Entity  repos.EntityRepo
	Link    repos.LinkRepo
	EtlRun  repos.EtlRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Staging: repos.NewStagingRepo(db, log),
		Movie:   repos.NewMovieRepo(db, log),
		Entity:  repos.NewEntityRepo(db, log),
		Link:    repos.NewLinkRepo(db, log),
		EtlRun:  repos.NewEtlRunRepo(db, log),
	}
}
