package movies

// Association tables: one row per (movie, entity) pair, enforced by the composite key.

type MovieGenre struct {
	MovieID int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	GenreID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"genre_id"`
}

func (MovieGenre) TableName() string { return "movie_genre" }

type MovieKeyword struct {
	MovieID   int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	KeywordID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"keyword_id"`
}

func (MovieKeyword) TableName() string { return "movie_keyword" }

type MovieCast struct {
	MovieID int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CastID  int64 `gorm:"primaryKey;autoIncrement:false;index" json:"cast_id"`
}

func (MovieCast) TableName() string { return "movie_cast" }

type MovieCrew struct {
	MovieID int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CrewID  int64 `gorm:"primaryKey;autoIncrement:false;index" json:"crew_id"`
}

func (MovieCrew) TableName() string { return "movie_crew" }

type MovieProductionCompany struct {
	MovieID   int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CompanyID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"company_id"`
}

func (MovieProductionCompany) TableName() string { return "movie_production_company" }

type MovieProductionCountry struct {
	MovieID   int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	CountryID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"country_id"`
}

func (MovieProductionCountry) TableName() string { return "movie_production_country" }

type MovieSpokenLanguage struct {
	MovieID    int64 `gorm:"primaryKey;autoIncrement:false" json:"movie_id"`
	LanguageID int64 `gorm:"primaryKey;autoIncrement:false;index" json:"language_id"`
}

func (MovieSpokenLanguage) TableName() string { return "movie_spoken_language" }
