package movies

import (
	"time"

	"gorm.io/datatypes"
)

// StagingMovie is one raw input row. Every column except the id is nullable text as
// loaded; the cleaner rewrites them to "" when absent and fills ReleaseDate from
// ReleaseDateRaw.
type StagingMovie struct {
	ID int64 `gorm:"primaryKey;autoIncrement:false" json:"id"`

	Budget              *string `gorm:"column:budget" json:"budget"`
	Genres              *string `gorm:"column:genres" json:"genres"`
	Homepage            *string `gorm:"column:homepage" json:"homepage"`
	Keywords            *string `gorm:"column:keywords" json:"keywords"`
	OriginalLanguage    *string `gorm:"column:original_language" json:"original_language"`
	OriginalTitle       *string `gorm:"column:original_title" json:"original_title"`
	Overview            *string `gorm:"column:overview;type:text" json:"overview"`
	Popularity          *string `gorm:"column:popularity" json:"popularity"`
	ProductionCompanies *string `gorm:"column:production_companies;type:text" json:"production_companies"`
	ProductionCountries *string `gorm:"column:production_countries;type:text" json:"production_countries"`
	ReleaseDateRaw      *string `gorm:"column:release_date_raw" json:"release_date_raw"`
	Revenue             *string `gorm:"column:revenue" json:"revenue"`
	Runtime             *string `gorm:"column:runtime" json:"runtime"`
	SpokenLanguages     *string `gorm:"column:spoken_languages;type:text" json:"spoken_languages"`
	Status              *string `gorm:"column:status" json:"status"`
	Tagline             *string `gorm:"column:tagline" json:"tagline"`
	Title               *string `gorm:"column:title" json:"title"`
	VoteAverage         *string `gorm:"column:vote_average" json:"vote_average"`
	VoteCount           *string `gorm:"column:vote_count" json:"vote_count"`
	Cast                *string `gorm:"column:cast;type:text" json:"cast"`
	Crew                *string `gorm:"column:crew;type:text" json:"crew"`
	Director            *string `gorm:"column:director" json:"director"`

	// Written by the cleaner only.
	ReleaseDate *datatypes.Date `gorm:"column:release_date" json:"release_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StagingMovie) TableName() string { return "movie_staging" }

// Text returns the dereferenced value of a nullable staging column.
func Text(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
