package movies

import (
	"gorm.io/gorm"

	types "github.com/yungbote/movies-etl/internal/domain"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

type MovieRepo interface {
	GetByID(dbc dbctx.Context, id int64) (*types.Movie, error)
	Create(dbc dbctx.Context, movie *types.Movie) error
	Save(dbc dbctx.Context, movie *types.Movie) error
}

type movieRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMovieRepo(db *gorm.DB, baseLog *logger.Logger) MovieRepo {
	return &movieRepo{
		db:  db,
		log: baseLog.With("repo", "MovieRepo"),
	}
}

// GetByID returns nil without error when no movie has id.
func (r *movieRepo) GetByID(dbc dbctx.Context, id int64) (*types.Movie, error) {
	transaction := dbc.Conn(r.db)
	var out []*types.Movie
	if err := transaction.
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *movieRepo) Create(dbc dbctx.Context, movie *types.Movie) error {
	transaction := dbc.Conn(r.db)
	return transaction.Create(movie).Error
}

// Save writes every column of movie, including nil scalars.
func (r *movieRepo) Save(dbc dbctx.Context, movie *types.Movie) error {
	transaction := dbc.Conn(r.db)
	return transaction.Save(movie).Error
}
