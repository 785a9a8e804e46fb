package transform

import (
	"fmt"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
)

// applyScalars overwrites every scalar column of m from the cleaned staging row.
// Blank numeric columns become NULL; malformed ones fail the batch.
func applyScalars(m *types.Movie, sm *types.StagingMovie) error {
	var err error
	fail := func(field string, cause error) error {
		return etlerr.New(etlerr.CodeParse, "transform.scalars", fmt.Sprintf("movie %d: field %s: %v", sm.ID, field, cause), cause)
	}

	if m.Budget, err = fields.Int64(types.Text(sm.Budget)); err != nil {
		return fail("budget", err)
	}
	if m.Revenue, err = fields.Int64(types.Text(sm.Revenue)); err != nil {
		return fail("revenue", err)
	}
	if m.VoteCount, err = fields.Int64(types.Text(sm.VoteCount)); err != nil {
		return fail("vote_count", err)
	}
	if m.Popularity, err = fields.Float64(types.Text(sm.Popularity)); err != nil {
		return fail("popularity", err)
	}
	if m.Runtime, err = fields.Float64(types.Text(sm.Runtime)); err != nil {
		return fail("runtime", err)
	}
	if m.VoteAverage, err = fields.Float64(types.Text(sm.VoteAverage)); err != nil {
		return fail("vote_average", err)
	}

	m.Homepage = types.Text(sm.Homepage)
	m.OriginalLanguage = types.Text(sm.OriginalLanguage)
	m.OriginalTitle = types.Text(sm.OriginalTitle)
	m.Overview = types.Text(sm.Overview)
	m.ReleaseDate = sm.ReleaseDate
	m.Status = types.Text(sm.Status)
	m.Tagline = types.Text(sm.Tagline)
	m.Title = types.Text(sm.Title)
	m.Director = types.Text(sm.Director)
	return nil
}
