package syncer

import "time"

// RecordError identifies a single record that could not be mirrored, with a
// human-readable reason.
type RecordError struct {
	ID     string
	Reason string
}

// Summary is the terminal result of a sync run. It is complete when Run
// returns nil error, partial when the run was cancelled.
type Summary struct {
	RunID string

	// Pages is the number of remote pages fetched.
	Pages int
	// Seen is the number of raw records received from the remote.
	Seen int
	// Processed counts records that reached a terminal state
	// (upserted, unchanged, skipped or failed).
	Processed int

	Upserted  int
	Unchanged int
	Skipped   int
	Failed    int

	Skips    []RecordError
	Failures []RecordError

	Duration time.Duration
}

// Progress is a point-in-time snapshot reported after each page completes.
// The total is only known so far: the remote does not announce its size.
type Progress struct {
	Pages     int
	Seen      int
	Processed int
}
