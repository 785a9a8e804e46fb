package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the caller's context and, inside a batch, the open transaction.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Conn returns the handle statements should run on: the transaction when one is open,
// otherwise db. The result is bound to Ctx, or to context.Background when Ctx is nil.
func (c Context) Conn(db *gorm.DB) *gorm.DB {
	conn := c.Tx
	if conn == nil {
		conn = db
	}
	ctx := c.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return conn.WithContext(ctx)
}
