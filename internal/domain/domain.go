package domain

import (
	"github.com/yungbote/movies-etl/internal/domain/jobs"
	"github.com/yungbote/movies-etl/internal/domain/movies"
)

type Relation = movies.Relation
type Binding = movies.Binding
type Entity = movies.Entity

type StagingMovie = movies.StagingMovie
type Movie = movies.Movie

type Genre = movies.Genre
type Keyword = movies.Keyword
type CastMember = movies.CastMember
type Crew = movies.Crew
type ProductionCompany = movies.ProductionCompany
type ProductionCountry = movies.ProductionCountry
type SpokenLanguage = movies.SpokenLanguage

type MovieGenre = movies.MovieGenre
type MovieKeyword = movies.MovieKeyword
type MovieCast = movies.MovieCast
type MovieCrew = movies.MovieCrew
type MovieProductionCompany = movies.MovieProductionCompany
type MovieProductionCountry = movies.MovieProductionCountry
type MovieSpokenLanguage = movies.MovieSpokenLanguage

type EtlRun = jobs.EtlRun

// Models lists every table owned by the pipeline in creation order.
func Models() []interface{} {
	return []interface{}{
		&StagingMovie{},
		&Movie{},

		&Genre{},
		&Keyword{},
		&CastMember{},
		&Crew{},
		&ProductionCompany{},
		&ProductionCountry{},
		&SpokenLanguage{},

		&MovieGenre{},
		&MovieKeyword{},
		&MovieCast{},
		&MovieCrew{},
		&MovieProductionCompany{},
		&MovieProductionCountry{},
		&MovieSpokenLanguage{},

		&EtlRun{},
	}
}

// Text returns the dereferenced value of a nullable staging column.
func Text(v *string) string { return movies.Text(v) }
