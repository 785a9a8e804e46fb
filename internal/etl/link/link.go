package link

import (
	"fmt"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/data/repos"
	"github.com/yungbote/movies-etl/internal/domain/movies"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// Linker writes association rows at most once per (movie, entity) pair.
type Linker struct {
	links repos.LinkRepo
	log   *logger.Logger
}

func New(links repos.LinkRepo, log *logger.Logger) *Linker {
	return &Linker{links: links, log: log.With("component", "Linker")}
}

// Link associates movieID with entityID and reports whether a row was inserted.
// A zero entityID means the entity is absent and nothing is written.
func (l *Linker) Link(dbc dbctx.Context, rel movies.Relation, movieID, entityID int64) (bool, error) {
	const op = "link"
	if entityID == 0 {
		return false, nil
	}
	b, ok := movies.BindingFor(rel)
	if !ok {
		return false, etlerr.New(etlerr.CodeConfig, op, fmt.Sprintf("unknown relation %q", rel), nil)
	}
	exists, err := l.links.Exists(dbc, b, movieID, entityID)
	if err != nil {
		return false, aggregates.MapError(op+"."+string(rel), err)
	}
	if exists {
		return false, nil
	}
	if err := l.links.Create(dbc, b, movieID, entityID); err != nil {
		return false, aggregates.MapError(op+"."+string(rel), err)
	}
	return true, nil
}

// Seen tracks entity ids already linked for one movie and relation within a pass.
type Seen map[int64]struct{}

// Add records id and reports whether it was new.
func (s Seen) Add(id int64) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}
