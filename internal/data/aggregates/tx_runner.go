package aggregates

import (
	"context"

	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
	etlerr "github.com/yungbote/movies-etl/internal/pkg/errors"
	"gorm.io/gorm"
)

// TxRunner provides the transaction boundary used by the loader and the transformer.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return etlerr.New(etlerr.CodeInternal, "tx.begin", "transaction runner has nil db", nil)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	return MapError("tx", err)
}
