package movies

import (
	"gorm.io/gorm"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type LinkRepo interface {
	Exists(dbc dbctx.Context, b types.Binding, movieID, entityID int64) (bool, error)
	Create(dbc dbctx.Context, b types.Binding, movieID, entityID int64) error
}

type linkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLinkRepo(db *gorm.DB, baseLog *logger.Logger) LinkRepo {
	return &linkRepo{
		db:  db,
		log: baseLog.With("repo", "LinkRepo"),
	}
}

func (r *linkRepo) Exists(dbc dbctx.Context, b types.Binding, movieID, entityID int64) (bool, error) {
	transaction := dbc.Conn(r.db)
	var n int64
	if err := transaction.
		Table(b.JoinTable).
		Where(map[string]interface{}{"movie_id": movieID, b.ForeignKey: entityID}).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *linkRepo) Create(dbc dbctx.Context, b types.Binding, movieID, entityID int64) error {
	transaction := dbc.Conn(r.db)
	return transaction.Create(b.NewLink(movieID, entityID)).Error
}
