package movies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yungbote/movies-etl/internal/data/repos/testutil"
	types "github.com/yungbote/movies-etl/internal/domain"
	domainmovies "github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
)

func TestEntityRepo_FindAndCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewEntityRepo(db, testutil.Logger(t))

	_, found, err := repo.FindID(dbc, "genre", map[string]interface{}{"name": "Drama"})
	require.NoError(t, err)
	require.False(t, found)

	id, err := repo.Create(dbc, &types.Genre{Name: "Drama"})
	require.NoError(t, err)
	require.NotZero(t, id)

	got, found, err := repo.FindID(dbc, "genre", map[string]interface{}{"name": "Drama"})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, id, got)

	crewID, err := repo.Create(dbc, &types.Crew{ID: 4711, Name: "Jane Doe", Job: "Director"})
	require.NoError(t, err)
	require.EqualValues(t, 4711, crewID)

	got, found, err = repo.FindID(dbc, "crew", map[string]interface{}{"id": int64(4711)})
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 4711, got)
}

func TestLinkRepo_ExistsAndCreate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	repo := NewLinkRepo(db, testutil.Logger(t))

	b, ok := domainmovies.BindingFor(domainmovies.RelationKeywords)
	require.True(t, ok)

	exists, err := repo.Exists(dbc, b, 9, 3)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, repo.Create(dbc, b, 9, 3))
	require.NoError(t, repo.Create(dbc, b, 9, 4))

	exists, err = repo.Exists(dbc, b, 9, 3)
	require.NoError(t, err)
	require.True(t, exists)

	var n int64
	require.NoError(t, tx.Table(b.JoinTable).Where("movie_id = ?", 9).Count(&n).Error)
	require.EqualValues(t, 2, n)

	require.Error(t, repo.Create(dbc, b, 9, 3), "composite key rejects duplicates")
}
