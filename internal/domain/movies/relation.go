package movies

// Relation names one of the denormalized staging columns that is normalized into an
// entity table plus a join table.
type Relation string

const (
	RelationGenres              Relation = "genres"
	RelationKeywords            Relation = "keywords"
	RelationCast                Relation = "cast"
	RelationCrew                Relation = "crew"
	RelationProductionCompanies Relation = "production_companies"
	RelationProductionCountries Relation = "production_countries"
	RelationSpokenLanguages     Relation = "spoken_languages"
)

// Binding is the storage side of a relation: where its entities and links live and
// which staging column feeds it.
type Binding struct {
	Relation    Relation
	EntityTable string
	JoinTable   string
	ForeignKey  string

	NewEntity func() Entity
	NewLink   func(movieID, entityID int64) interface{}
	Raw       func(s *StagingMovie) string
}

var bindings = []Binding{
	{
		Relation:    RelationGenres,
		EntityTable: "genre",
		JoinTable:   "movie_genre",
		ForeignKey:  "genre_id",
		NewEntity:   func() Entity { return &Genre{} },
		NewLink:     func(m, e int64) interface{} { return &MovieGenre{MovieID: m, GenreID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.Genres) },
	},
	{
		Relation:    RelationKeywords,
		EntityTable: "keyword",
		JoinTable:   "movie_keyword",
		ForeignKey:  "keyword_id",
		NewEntity:   func() Entity { return &Keyword{} },
		NewLink:     func(m, e int64) interface{} { return &MovieKeyword{MovieID: m, KeywordID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.Keywords) },
	},
	{
		Relation:    RelationCast,
		EntityTable: "cast_member",
		JoinTable:   "movie_cast",
		ForeignKey:  "cast_id",
		NewEntity:   func() Entity { return &CastMember{} },
		NewLink:     func(m, e int64) interface{} { return &MovieCast{MovieID: m, CastID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.Cast) },
	},
	{
		Relation:    RelationCrew,
		EntityTable: "crew",
		JoinTable:   "movie_crew",
		ForeignKey:  "crew_id",
		NewEntity:   func() Entity { return &Crew{} },
		NewLink:     func(m, e int64) interface{} { return &MovieCrew{MovieID: m, CrewID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.Crew) },
	},
	{
		Relation:    RelationProductionCompanies,
		EntityTable: "production_company",
		JoinTable:   "movie_production_company",
		ForeignKey:  "company_id",
		NewEntity:   func() Entity { return &ProductionCompany{} },
		NewLink:     func(m, e int64) interface{} { return &MovieProductionCompany{MovieID: m, CompanyID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.ProductionCompanies) },
	},
	{
		Relation:    RelationProductionCountries,
		EntityTable: "production_country",
		JoinTable:   "movie_production_country",
		ForeignKey:  "country_id",
		NewEntity:   func() Entity { return &ProductionCountry{} },
		NewLink:     func(m, e int64) interface{} { return &MovieProductionCountry{MovieID: m, CountryID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.ProductionCountries) },
	},
	{
		Relation:    RelationSpokenLanguages,
		EntityTable: "spoken_language",
		JoinTable:   "movie_spoken_language",
		ForeignKey:  "language_id",
		NewEntity:   func() Entity { return &SpokenLanguage{} },
		NewLink:     func(m, e int64) interface{} { return &MovieSpokenLanguage{MovieID: m, LanguageID: e} },
		Raw:         func(s *StagingMovie) string { return Text(s.SpokenLanguages) },
	},
}

// Relations lists every relation in processing order.
func Relations() []Relation {
	out := make([]Relation, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Relation)
	}
	return out
}

// BindingFor returns the storage binding for rel.
func BindingFor(rel Relation) (Binding, bool) {
	for _, b := range bindings {
		if b.Relation == rel {
			return b, true
		}
	}
	return Binding{}, false
}
