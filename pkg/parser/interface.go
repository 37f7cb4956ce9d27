package parser

import (
	"context"
	"errors"
)

// RecordSource provides an iterator over decoded activity records.
// Implementations must be safe for sequential access (not concurrent).
type RecordSource interface {
	// Next returns the next decoded record.
	// Returns io.EOF when no more records are available.
	// Payloads that cannot be decoded are skipped and do not surface here.
	Next(ctx context.Context) (*Record, error)

	// Close releases any resources held by the source.
	Close() error
}

var (
	// ErrMalformedRecord marks a payload that is not a JSON object.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingField is returned when a required record field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidField is returned when a record field has the wrong type.
	ErrInvalidField = errors.New("invalid field")

	// ErrMalformedTimestamp is returned when an event time cannot be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)
