package jobs

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type EtlRunRepo interface {
	Create(dbc dbctx.Context, runs []*types.EtlRun) ([]*types.EtlRun, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.EtlRun, error)
	GetLatestByStage(dbc dbctx.Context, stage string) (*types.EtlRun, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type etlRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEtlRunRepo(db *gorm.DB, baseLog *logger.Logger) EtlRunRepo {
	return &etlRunRepo{
		db:  db,
		log: baseLog.With("repo", "EtlRunRepo"),
	}
}

func (r *etlRunRepo) Create(dbc dbctx.Context, runs []*types.EtlRun) ([]*types.EtlRun, error) {
	transaction := dbc.Conn(r.db)
	if len(runs) == 0 {
		return []*types.EtlRun{}, nil
	}
	for _, run := range runs {
		if run != nil && run.ID == uuid.Nil {
			run.ID = uuid.New()
		}
	}
	if err := transaction.Create(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *etlRunRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.EtlRun, error) {
	transaction := dbc.Conn(r.db)
	var out []*types.EtlRun
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *etlRunRepo) GetLatestByStage(dbc dbctx.Context, stage string) (*types.EtlRun, error) {
	transaction := dbc.Conn(r.db)
	if stage == "" {
		return nil, nil
	}
	var run types.EtlRun
	err := transaction.
		Where("stage = ?", stage).
		Order("started_at DESC").
		Limit(1).
		Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}

func (r *etlRunRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Conn(r.db)
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	return transaction.
		Model(&types.EtlRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}
