package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Events recorded by the
// aggregates saved through its repositories are stored in the outbox as
// part of Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit writes pending outbox records and commits the transaction.
	// Returns error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit is harmless
	// and returns an error that callers ignore.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
