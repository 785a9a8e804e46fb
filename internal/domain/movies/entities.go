package movies

// Entity is a relation row shared across movies and deduplicated by a natural key.
type Entity interface {
	TableName() string
	EntityID() int64
}

type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (Genre) TableName() string  { return "genre" }
func (g *Genre) EntityID() int64 { return g.ID }

type Keyword struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (Keyword) TableName() string  { return "keyword" }
func (k *Keyword) EntityID() int64 { return k.ID }

type CastMember struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (CastMember) TableName() string  { return "cast_member" }
func (c *CastMember) EntityID() int64 { return c.ID }

// Crew rows keep the external crew id as their primary key.
type Crew struct {
	ID         int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name       string `gorm:"column:name" json:"name"`
	Gender     *int   `gorm:"column:gender" json:"gender,omitempty"`
	Department string `gorm:"column:department" json:"department"`
	Job        string `gorm:"column:job" json:"job"`
	CreditID   string `gorm:"column:credit_id" json:"credit_id"`
}

func (Crew) TableName() string  { return "crew" }
func (c *Crew) EntityID() int64 { return c.ID }

// ProductionCompany rows keep the external company id as their primary key.
type ProductionCompany struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (ProductionCompany) TableName() string  { return "production_company" }
func (p *ProductionCompany) EntityID() int64 { return p.ID }

type ProductionCountry struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	ISO31661 string `gorm:"column:iso_3166_1;not null;uniqueIndex" json:"iso_3166_1"`
	Name     string `gorm:"column:name" json:"name"`
}

func (ProductionCountry) TableName() string  { return "production_country" }
func (p *ProductionCountry) EntityID() int64 { return p.ID }

type SpokenLanguage struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	ISO6391 string `gorm:"column:iso_639_1;not null;uniqueIndex" json:"iso_639_1"`
	Name    string `gorm:"column:name" json:"name"`
}

func (SpokenLanguage) TableName() string  { return "spoken_language" }
func (s *SpokenLanguage) EntityID() int64 { return s.ID }
