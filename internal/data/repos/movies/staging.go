package movies

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

// upsertBatchSize keeps each INSERT under SQLite's bound-variable limit.
const upsertBatchSize = 200

type StagingRepo interface {
	Upsert(dbc dbctx.Context, rows []*types.StagingMovie) (int, error)
	GetAll(dbc dbctx.Context) ([]*types.StagingMovie, error)
	SaveAll(dbc dbctx.Context, rows []*types.StagingMovie) error
	Count(dbc dbctx.Context) (int64, error)
}

type stagingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStagingRepo(db *gorm.DB, baseLog *logger.Logger) StagingRepo {
	return &stagingRepo{
		db:  db,
		log: baseLog.With("repo", "StagingRepo"),
	}
}

// Upsert inserts rows keyed by id, overwriting every loaded column of existing rows.
func (r *stagingRepo) Upsert(dbc dbctx.Context, rows []*types.StagingMovie) (int, error) {
	transaction := dbc.Conn(r.db)
	if len(rows) == 0 {
		return 0, nil
	}
	err := transaction.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(&rows, upsertBatchSize).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *stagingRepo) GetAll(dbc dbctx.Context) ([]*types.StagingMovie, error) {
	transaction := dbc.Conn(r.db)
	var out []*types.StagingMovie
	if err := transaction.
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stagingRepo) SaveAll(dbc dbctx.Context, rows []*types.StagingMovie) error {
	transaction := dbc.Conn(r.db)
	for _, row := range rows {
		if row == nil {
			continue
		}
		if err := transaction.Save(row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *stagingRepo) Count(dbc dbctx.Context) (int64, error) {
	transaction := dbc.Conn(r.db)
	var n int64
	if err := transaction.
		Model(&types.StagingMovie{}).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
