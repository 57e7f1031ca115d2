package store

import "errors"

// Sentinel errors returned by the history repository. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrHistoryNotSaved is returned when an INSERT completes without error
	// but the number of affected rows is zero, meaning nothing was persisted.
	ErrHistoryNotSaved = errors.New("history entry was not saved")

	// ErrExecutingQuery is returned when executing a read-only query against
	// the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan history rows")
)
