package link

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/movies-etl/internal/data/repos"
	"github.com/yungbote/movies-etl/internal/data/repos/testutil"
	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
)

func TestLink_SecondCallIsNoop(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	l := New(repos.NewLinkRepo(db, testutil.Logger(t)), testutil.Logger(t))

	created, err := l.Link(dbc, movies.RelationGenres, 19995, 7)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = l.Link(dbc, movies.RelationGenres, 19995, 7)
	require.NoError(t, err)
	assert.False(t, created)

	assert.EqualValues(t, 1, testutil.Count(t, dbc.Ctx, tx, "movie_genre"))
}

func TestLink_AbsentEntityIsSkipped(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}
	l := New(repos.NewLinkRepo(db, testutil.Logger(t)), testutil.Logger(t))

	created, err := l.Link(dbc, movies.RelationCrew, 1, 0)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, testutil.Count(t, dbc.Ctx, tx, "movie_crew"))
}

func TestSeen(t *testing.T) {
	s := Seen{}
	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.True(t, s.Add(4))
}
