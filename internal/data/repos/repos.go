package repos

import (
	"github.com/yungbote/movies-etl/internal/data/repos/jobs"
	"github.com/yungbote/movies-etl/internal/data/repos/movies"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
	"gorm.io/gorm"
)

type StagingRepo = movies.StagingRepo
type MovieRepo = movies.MovieRepo
type EntityRepo = movies.EntityRepo
type LinkRepo = movies.LinkRepo

type EtlRunRepo = jobs.EtlRunRepo

func NewStagingRepo(db *gorm.DB, baseLog *logger.Logger) StagingRepo {
	return movies.NewStagingRepo(db, baseLog)
}
func NewMovieRepo(db *gorm.DB, baseLog *logger.Logger) MovieRepo {
	return movies.NewMovieRepo(db, baseLog)
}
func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return movies.NewEntityRepo(db, baseLog)
}
func NewLinkRepo(db *gorm.DB, baseLog *logger.Logger) LinkRepo {
	return movies.NewLinkRepo(db, baseLog)
}

func NewEtlRunRepo(db *gorm.DB, baseLog *logger.Logger) EtlRunRepo {
	return jobs.NewEtlRunRepo(db, baseLog)
}
