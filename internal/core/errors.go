package core

import "errors"

var (
	// ErrNotFound covers both a truly absent id and an owner mismatch.
	// Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("expense not found")

	// ErrStorageUnavailable means the underlying store could not be
	// reached or written.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNoData signals an empty filtered set. It is a normal outcome,
	// not a fault; report generators return it instead of writing files.
	ErrNoData = errors.New("no expenses match the filter")

	// ErrArtifactWrite means a report was rendered but could not be
	// persisted to disk.
	ErrArtifactWrite = errors.New("artifact write failed")

	// ErrMalformedParameters means a required parameter is missing or of
	// the wrong type. Surfaced to users as guidance text, never a crash.
	ErrMalformedParameters = errors.New("malformed parameters")
)
