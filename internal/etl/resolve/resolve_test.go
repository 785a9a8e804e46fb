package resolve

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/movies-etl/internal/data/repos"
	"github.com/yungbote/movies-etl/internal/data/repos/testutil"
	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/etl/fields"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
)

type failingEntityRepo struct{ calls int }

func (f *failingEntityRepo) FindID(dbctx.Context, string, map[string]interface{}) (int64, bool, error) {
	f.calls++
	return 0, false, errors.New("connection refused")
}

func (f *failingEntityRepo) Create(dbctx.Context, types.Entity) (int64, error) {
	f.calls++
	return 0, errors.New("connection refused")
}

func setup(t *testing.T) (*Resolver, dbctx.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	r := New(repos.NewEntityRepo(db, testutil.Logger(t)), testutil.Logger(t))
	return r, dbctx.Context{Ctx: context.Background(), Tx: tx}
}

func TestResolve_NameIsIdempotent(t *testing.T) {
	r, dbc := setup(t)

	first, err := r.Resolve(dbc, movies.RelationGenres, []fields.Item{fields.NameItem("Action")}, nil)
	require.NoError(t, err)
	require.Len(t, first.IDs, 1)
	assert.Equal(t, 1, first.Created)

	second, err := r.Resolve(dbc, movies.RelationGenres, []fields.Item{fields.NameItem("Action")}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.IDs, second.IDs)
	assert.Equal(t, 0, second.Created)

	assert.EqualValues(t, 1, testutil.Count(t, dbc.Ctx, dbc.Tx, "genre"))
}

func TestResolve_PreservesOrderWithinCall(t *testing.T) {
	r, dbc := setup(t)

	items := slices.Collect(fields.Genres("Drama Science Fiction Drama"))
	res, err := r.Resolve(dbc, movies.RelationGenres, items, nil)
	require.NoError(t, err)
	require.Len(t, res.IDs, 3)
	assert.Equal(t, res.IDs[0], res.IDs[2], "repeated name resolves to the row created earlier in the call")
	assert.NotEqual(t, res.IDs[0], res.IDs[1])
	assert.Equal(t, 2, res.Created)
}

func TestResolve_RecordsByLookupKey(t *testing.T) {
	r, dbc := setup(t)

	items := slices.Collect(fields.Structured(`[{'credit_id': 'abc', 'department': 'Directing', 'gender': 2, 'id': 2710, 'job': 'Director', 'name': 'James Cameron'}]`))
	res, err := r.Resolve(dbc, movies.RelationCrew, items, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2710}, res.IDs)

	var crew types.Crew
	require.NoError(t, dbc.Tx.First(&crew, 2710).Error)
	assert.Equal(t, "James Cameron", crew.Name)
	assert.Equal(t, "Director", crew.Job)
	require.NotNil(t, crew.Gender)
	assert.Equal(t, 2, *crew.Gender)

	countries := slices.Collect(fields.Structured(`[{"iso_3166_1": "US", "name": "United States of America"}, {"iso_3166_1": "US", "name": "USA"}]`))
	res, err = r.Resolve(dbc, movies.RelationProductionCountries, countries, []string{"iso_3166_1"})
	require.NoError(t, err)
	require.Len(t, res.IDs, 2)
	assert.Equal(t, res.IDs[0], res.IDs[1])
	assert.Equal(t, 1, res.Created)
}

func TestResolve_RecordWithoutLookupKeysIsConfigError(t *testing.T) {
	repo := &failingEntityRepo{}
	r := New(repo, testutil.Logger(t))

	items := slices.Collect(fields.Structured(`[{"id": 1, "name": "A"}]`))
	_, err := r.Resolve(dbctx.Context{Ctx: context.Background()}, movies.RelationProductionCompanies, items, nil)
	require.Error(t, err)
	assert.True(t, etlerr.IsCode(err, etlerr.CodeConfig))
	assert.Zero(t, repo.calls, "no query before configuration is checked")
}

func TestResolve_RecordMissingLookupFieldIsValidationError(t *testing.T) {
	repo := &failingEntityRepo{}
	r := New(repo, testutil.Logger(t))

	items := slices.Collect(fields.Structured(`[{"name": "No Code"}]`))
	_, err := r.Resolve(dbctx.Context{Ctx: context.Background()}, movies.RelationSpokenLanguages, items, []string{"iso_639_1"})
	require.Error(t, err)
	assert.True(t, etlerr.IsCode(err, etlerr.CodeValidation))
	assert.Zero(t, repo.calls)
}

func TestResolve_RepoFailureIsPersistenceError(t *testing.T) {
	r := New(&failingEntityRepo{}, testutil.Logger(t))
	_, err := r.Resolve(dbctx.Context{Ctx: context.Background()}, movies.RelationKeywords, []fields.Item{fields.NameItem("alien")}, nil)
	require.Error(t, err)
	assert.True(t, etlerr.IsCode(err, etlerr.CodePersistence))
}

func TestResolve_EmptyItems(t *testing.T) {
	r := New(&failingEntityRepo{}, testutil.Logger(t))
	res, err := r.Resolve(dbctx.Context{Ctx: context.Background()}, movies.RelationCast, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, res.IDs)
}
