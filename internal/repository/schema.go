package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// lazySchema runs a CREATE TABLE IF NOT EXISTS statement once per repository
// instance. Concurrent cold starts can still race on the catalog, so a
// duplicate-object failure is treated as "already exists" rather than an
// error.
type lazySchema struct {
	ddl  string
	once sync.Once
	err  error
}

func (s *lazySchema) ensure(ctx context.Context, db *sqlx.DB) error {
	s.once.Do(func() {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			if isDuplicateObject(err) {
				return
			}
			s.err = fmt.Errorf("ensure table: %w", err)
		}
	})
	return s.err
}

func isDuplicateObject(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 42P07 duplicate_table, 23505 unique_violation on the catalog
		return pqErr.Code == "42P07" || pqErr.Code == "23505"
	}
	return false
}
