package movies

import (
	"gorm.io/gorm"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// EntityRepo reads and writes relation entities by table, so one implementation serves
// every relation.
type EntityRepo interface {
	FindID(dbc dbctx.Context, table string, filter map[string]interface{}) (int64, bool, error)
	Create(dbc dbctx.Context, entity types.Entity) (int64, error)
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return &entityRepo{
		db:  db,
		log: baseLog.With("repo", "EntityRepo"),
	}
}

func (r *entityRepo) FindID(dbc dbctx.Context, table string, filter map[string]interface{}) (int64, bool, error) {
	transaction := dbc.Conn(r.db)
	var ids []int64
	if err := transaction.
		Table(table).
		Where(filter).
		Order("id ASC").
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *entityRepo) Create(dbc dbctx.Context, entity types.Entity) (int64, error) {
	transaction := dbc.Conn(r.db)
	if err := transaction.Create(entity).Error; err != nil {
		return 0, err
	}
	return entity.EntityID(), nil
}
