package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/teniciavanaalten/simlog/internal/records"
)

// Keys under which each collection is stored.
const (
	SessionsKey    = "simlog_sessions"
	IssuesKey      = "simlog_issues"
	MaintenanceKey = "simlog_maintenance"
)

// Collection is one named, whole-value collection of records. Every read
// decodes the entire stored array and every write replaces it.
//
// A missing or malformed stored value reads as the collection's seed data.
type Collection[T records.Record] struct {
	key   string
	q     dialect.ExecQuerier
	seed  func(now time.Time) []T
	shape *collectionShape
	now   func() time.Time
}

func newSessions(q dialect.ExecQuerier, now func() time.Time) *Collection[records.Session] {
	return &Collection[records.Session]{key: SessionsKey, q: q, seed: SeedSessions, shape: sessionsShape, now: now}
}

func newIssues(q dialect.ExecQuerier, now func() time.Time) *Collection[records.Issue] {
	return &Collection[records.Issue]{key: IssuesKey, q: q, seed: SeedIssues, shape: issuesShape, now: now}
}

func newMaintenance(q dialect.ExecQuerier, now func() time.Time) *Collection[records.Maintenance] {
	return &Collection[records.Maintenance]{key: MaintenanceKey, q: q, seed: SeedMaintenance, shape: maintenanceShape, now: now}
}

// Key returns the storage key of the collection.
func (c *Collection[T]) Key() string { return c.key }

// All returns the whole collection, newest first.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	payload, ok, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c.seed(c.now()), nil
	}
	out, ok := c.decode(payload)
	if !ok {
		return c.seed(c.now()), nil
	}
	return out, nil
}

// Find returns the record with the given id.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, bool, error) {
	var zero T
	all, err := c.All(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, rec := range all {
		if rec.RecordID() == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Add prepends rec and persists the whole collection.
func (c *Collection[T]) Add(ctx context.Context, rec T) error {
	all, err := c.All(ctx)
	if err != nil {
		return err
	}
	next := make([]T, 0, len(all)+1)
	next = append(next, rec)
	next = append(next, all...)
	return c.save(ctx, next)
}

// Update replaces the record whose id matches rec, keeping order. It
// reports whether a record was replaced; when none matches nothing is
// written.
func (c *Collection[T]) Update(ctx context.Context, rec T) (bool, error) {
	all, err := c.All(ctx)
	if err != nil {
		return false, err
	}
	idx := -1
	for i, r := range all {
		if r.RecordID() == rec.RecordID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	all[idx] = rec
	if err := c.save(ctx, all); err != nil {
		return false, err
	}
	return true, nil
}

// decode parses a stored payload. It returns false when the payload is not
// a JSON array of the expected record shape.
func (c *Collection[T]) decode(payload string) ([]T, bool) {
	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, false
	}
	if err := c.shape.validate(doc); err != nil {
		return nil, false
	}
	var out []T
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, false
	}
	if out == nil {
		out = []T{}
	}
	return out, true
}

func (c *Collection[T]) load(ctx context.Context) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("payload").
		From(entsql.Table(collectionsTable)).
		Where(entsql.EQ("bucket", c.key)).
		Query()

	var rows entsql.Rows
	if err := c.q.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("load %s: %w", c.key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, fmt.Errorf("load %s: %w", c.key, err)
		}
		return "", false, nil
	}
	var payload string
	if err := rows.Scan(&payload); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", c.key, err)
	}
	return payload, true, nil
}

func (c *Collection[T]) save(ctx context.Context, all []T) error {
	b, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(collectionsTable).
		Columns("bucket", "payload", "updated_at").
		Values(c.key, string(b), c.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("bucket"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := c.q.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
