package mocks

import (
	"context"

	"smart-campus/internal/repository"
)

// Transactor runs the transaction body against a fixed repository set, so
// unit tests exercise the same code path as a real database transaction.
type Transactor struct {
	Repos *repository.Repositories

	// BeginErr short-circuits before the body runs; CommitErr fires after a
	// successful body.
	BeginErr  error
	CommitErr error
}

func (t *Transactor) InTx(ctx context.Context, fn func(*repository.Repositories) error) error {
	if t.BeginErr != nil {
		return t.BeginErr
	}
	if err := fn(t.Repos); err != nil {
		return err
	}
	return t.CommitErr
}
