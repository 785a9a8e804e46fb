package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"gorm.io/gorm"
)

// MapError maps database failures into pipeline error codes.
// Errors that already carry a code pass through untouched.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if etlerr.CodeOf(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return etlerr.Wrap(etlerr.CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return etlerr.Wrap(etlerr.CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505", "23503", "23502":
			// unique / foreign key / not null
			return etlerr.Wrap(etlerr.CodePersistence, op, err)
		case "22P02", "22003", "22007", "22008":
			// invalid text / numeric range / datetime format
			return etlerr.Wrap(etlerr.CodeValidation, op, err)
		}
	}

	return etlerr.Wrap(etlerr.CodePersistence, op, err)
}
