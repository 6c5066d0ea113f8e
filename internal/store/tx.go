package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"github.com/teniciavanaalten/simlog/internal/records"
)

// Tx exposes the collections bound to a single SQL transaction.
type Tx struct {
	tx    dialect.Tx
	store *Store
}

// Sessions returns the session collection inside the transaction.
func (t *Tx) Sessions() *Collection[records.Session] {
	return newSessions(t.tx, t.store.now)
}

// Issues returns the issue collection inside the transaction.
func (t *Tx) Issues() *Collection[records.Issue] {
	return newIssues(t.tx, t.store.now)
}

// Maintenance returns the maintenance collection inside the transaction.
func (t *Tx) Maintenance() *Collection[records.Maintenance] {
	return newMaintenance(t.tx, t.store.now)
}

// InTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back when it returns an error or panics.
func (s *Store) InTx(ctx context.Context, fn func(tx *Tx) error) (err error) {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if v := recover(); v != nil {
			_ = tx.Rollback()
			panic(v)
		}
	}()

	if err := fn(&Tx{tx: tx, store: s}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w: rollback: %v", err, rerr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
