package testutil

import (
	"context"
	"fmt"
	"testing"

	types "github.com/yungbote/movies-etl/internal/domain"
	"gorm.io/gorm"
)

// StagingRow builds a cleaned staging row with every text column set to "".
func StagingRow(id int64) *types.StagingMovie {
	empty := func() *string { return Str("") }
	return &types.StagingMovie{
		ID:                  id,
		Budget:              empty(),
		Genres:              empty(),
		Homepage:            empty(),
		Keywords:            empty(),
		OriginalLanguage:    empty(),
		OriginalTitle:       empty(),
		Overview:            empty(),
		Popularity:          empty(),
		ProductionCompanies: empty(),
		ProductionCountries: empty(),
		ReleaseDateRaw:      empty(),
		Revenue:             empty(),
		Runtime:             empty(),
		SpokenLanguages:     empty(),
		Status:              empty(),
		Tagline:             empty(),
		Title:               Str(fmt.Sprintf("Movie %d", id)),
		VoteAverage:         empty(),
		VoteCount:           empty(),
		Cast:                empty(),
		Crew:                empty(),
		Director:            empty(),
	}
}

func SeedStaging(tb testing.TB, ctx context.Context, tx *gorm.DB, rows ...*types.StagingMovie) {
	tb.Helper()
	if len(rows) == 0 {
		return
	}
	if err := tx.WithContext(ctx).Create(&rows).Error; err != nil {
		tb.Fatalf("seed staging: %v", err)
	}
}

func Count(tb testing.TB, ctx context.Context, tx *gorm.DB, table string) int64 {
	tb.Helper()
	var n int64
	if err := tx.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}

func Str(s string) *string { return &s }
