package movies

import (
	"time"

	"gorm.io/datatypes"
)

// Movie is the canonical, typed row keyed by the source identifier.
type Movie struct {
	ID               int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Budget           *int64          `gorm:"column:budget" json:"budget,omitempty"`
	Homepage         string          `gorm:"column:homepage" json:"homepage"`
	OriginalLanguage string          `gorm:"column:original_language" json:"original_language"`
	OriginalTitle    string          `gorm:"column:original_title" json:"original_title"`
	Overview         string          `gorm:"column:overview;type:text" json:"overview"`
	Popularity       *float64        `gorm:"column:popularity" json:"popularity,omitempty"`
	ReleaseDate      *datatypes.Date `gorm:"column:release_date" json:"release_date,omitempty"`
	Revenue          *int64          `gorm:"column:revenue" json:"revenue,omitempty"`
	Runtime          *float64        `gorm:"column:runtime" json:"runtime,omitempty"`
	Status           string          `gorm:"column:status" json:"status"`
	Tagline          string          `gorm:"column:tagline" json:"tagline"`
	Title            string          `gorm:"column:title;index" json:"title"`
	VoteAverage      *float64        `gorm:"column:vote_average" json:"vote_average,omitempty"`
	VoteCount        *int64          `gorm:"column:vote_count" json:"vote_count,omitempty"`
	Director         string          `gorm:"column:director" json:"director"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Movie) TableName() string { return "movie" }
