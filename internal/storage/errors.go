package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"homecal/internal/core"
)

// translateError maps driver failures onto the core error kinds while keeping
// the driver error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", core.ErrNotFound, err)
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	// Extended result codes carry the primary code in the low byte
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return fmt.Errorf("%w: %w", core.ErrConstraint, err)
	case sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_NOTADB,
		sqlite3.SQLITE_PERM,
		sqlite3.SQLITE_BUSY,
		sqlite3.SQLITE_LOCKED,
		sqlite3.SQLITE_READONLY,
		sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_FULL,
		sqlite3.SQLITE_CORRUPT:
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return err
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, core.ErrNotFound)
}
