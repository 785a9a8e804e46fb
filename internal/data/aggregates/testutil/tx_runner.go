package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/movies-etl/internal/data/aggregates"
	"github.com/yungbote/movies-etl/internal/pkg/dbctx"
)

// InjectedTxRunner is a test helper for pipeline stage tests.
// With a nil Inner it runs the body without a transaction; with Inner set
// the body runs inside Inner's transaction and injected failures roll it back.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	FailBegin  error
	FailCommit error

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	inner := r.Inner
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				r.count(&r.RollbackCalls)
				return err
			}
		}
		if failCommit != nil {
			r.count(&r.RollbackCalls)
			return failCommit
		}
		return nil
	}

	var err error
	if inner != nil {
		err = inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}
	if err == nil {
		r.count(&r.CommitCalls)
	}
	return err
}

func (r *InjectedTxRunner) count(n *int) {
	r.mu.Lock()
	*n++
	r.mu.Unlock()
}
