package staging

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/repos"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/observability"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// missingMarkers are spreadsheet and dataframe spellings of an absent value.
var missingMarkers = map[string]bool{
	"NaN":  true,
	"NaT":  true,
	"nan":  true,
	"None": true,
}

var releaseDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

type textRule struct {
	column string
	field  func(*types.StagingMovie) **string
}

// textRules lists every staging column rewritten to "" when absent.
var textRules = []textRule{
	{"budget", func(s *types.StagingMovie) **string { return &s.Budget }},
	{"genres", func(s *types.StagingMovie) **string { return &s.Genres }},
	{"homepage", func(s *types.StagingMovie) **string { return &s.Homepage }},
	{"keywords", func(s *types.StagingMovie) **string { return &s.Keywords }},
	{"original_language", func(s *types.StagingMovie) **string { return &s.OriginalLanguage }},
	{"original_title", func(s *types.StagingMovie) **string { return &s.OriginalTitle }},
	{"overview", func(s *types.StagingMovie) **string { return &s.Overview }},
	{"popularity", func(s *types.StagingMovie) **string { return &s.Popularity }},
	{"production_companies", func(s *types.StagingMovie) **string { return &s.ProductionCompanies }},
	{"production_countries", func(s *types.StagingMovie) **string { return &s.ProductionCountries }},
	{"release_date_raw", func(s *types.StagingMovie) **string { return &s.ReleaseDateRaw }},
	{"revenue", func(s *types.StagingMovie) **string { return &s.Revenue }},
	{"runtime", func(s *types.StagingMovie) **string { return &s.Runtime }},
	{"spoken_languages", func(s *types.StagingMovie) **string { return &s.SpokenLanguages }},
	{"status", func(s *types.StagingMovie) **string { return &s.Status }},
	{"tagline", func(s *types.StagingMovie) **string { return &s.Tagline }},
	{"title", func(s *types.StagingMovie) **string { return &s.Title }},
	{"vote_average", func(s *types.StagingMovie) **string { return &s.VoteAverage }},
	{"vote_count", func(s *types.StagingMovie) **string { return &s.VoteCount }},
	{"cast", func(s *types.StagingMovie) **string { return &s.Cast }},
	{"crew", func(s *types.StagingMovie) **string { return &s.Crew }},
	{"director", func(s *types.StagingMovie) **string { return &s.Director }},
}

// Cleaner normalizes staging rows in place so the transformer sees "" for absent text
// and a date or NULL for release_date.
type Cleaner struct {
	log     *logger.Logger
	tx      aggregates.TxRunner
	staging repos.StagingRepo
}

func NewCleaner(log *logger.Logger, tx aggregates.TxRunner, staging repos.StagingRepo) *Cleaner {
	return &Cleaner{
		log:     log.With("service", "StagingCleaner"),
		tx:      tx,
		staging: staging,
	}
}

// Clean rewrites every staging row in one transaction and returns the row count.
func (c *Cleaner) Clean(ctx context.Context) (n int, err error) {
	const op = "staging.clean"
	ctx, span := observability.StartSpan(ctx, op)
	defer func() { observability.EndSpan(span, err) }()

	undated := 0
	err = c.tx.InTx(ctx, func(dbc dbctx.Context) error {
		rows, err := c.staging.GetAll(dbc)
		if err != nil {
			return aggregates.MapError(op, err)
		}
		for _, row := range rows {
			CleanRow(row)
			if row.ReleaseDate == nil {
				undated++
			}
		}
		n = len(rows)
		return aggregates.MapError(op, c.staging.SaveAll(dbc, rows))
	})
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("rows", n))
	c.log.Info("Staging cleaned", "rows", n, "without_release_date", undated)
	return n, nil
}

// CleanRow applies the text rules and derives ReleaseDate from the raw text.
func CleanRow(row *types.StagingMovie) {
	raw := types.Text(row.ReleaseDateRaw)
	for _, rule := range textRules {
		p := rule.field(row)
		v := cleanText(*p)
		*p = &v
	}
	row.ReleaseDate = cleanDate(raw)
}

func cleanText(v *string) string {
	if v == nil || missingMarkers[*v] {
		return ""
	}
	return *v
}

func cleanDate(raw string) *datatypes.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" || missingMarkers[raw] {
		return nil
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
			return &d
		}
	}
	return nil
}
