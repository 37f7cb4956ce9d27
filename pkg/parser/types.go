// Package parser reads activity event records from JSON-lines files and Redis lists.
package parser

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Field names of an activity event record.
const (
	FieldEventID    = "eventId"
	FieldActivity   = "activity"
	FieldUser       = "user"
	FieldFile       = "file"
	FieldIPAddr     = "ipAddr"
	FieldTimestamp  = "timestamp"
	FieldTimeOffset = "timeOffset"
)

// Record is a single decoded activity event.
type Record struct {
	// Fields holds the decoded JSON object. Numbers are kept as json.Number.
	Fields map[string]any

	// Source is the file path or Redis key this record came from.
	Source string

	// LineNum is the 1-based line number (or pop sequence for Redis).
	LineNum int
}

// String returns a required string field.
func (r *Record) String(field string) (string, error) {
	v, ok := r.Fields[field]
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingField, field, r.position())
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string (%s)", ErrInvalidField, field, v, r.position())
	}
	return s, nil
}

// OptionalString returns a string field that may be absent.
// A present field of another type is an error.
func (r *Record) OptionalString(field string) (string, bool, error) {
	v, ok := r.Fields[field]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: %q is %T, want string (%s)", ErrInvalidField, field, v, r.position())
	}
	return s, true, nil
}

// NumericID is the key of a numeric event identifier in lowest terms,
// so 1, 1.0 and 1e0 are the same identifier.
type NumericID string

// EventID returns the event identifier as a comparable key.
// The string "1" and the number 1 are different identifiers.
func (r *Record) EventID() (any, error) {
	v, ok := r.Fields[FieldEventID]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrMissingField, FieldEventID, r.position())
	}
	switch id := v.(type) {
	case string:
		return id, nil
	case json.Number:
		n, ok := new(big.Rat).SetString(string(id))
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a number: %s (%s)", ErrInvalidField, FieldEventID, id, r.position())
		}
		return NumericID(n.RatString()), nil
	default:
		return nil, fmt.Errorf("%w: %q is %T, want string or number (%s)", ErrInvalidField, FieldEventID, v, r.position())
	}
}

func (r *Record) position() string {
	if r.Source == "" {
		return fmt.Sprintf("record %d", r.LineNum)
	}
	return fmt.Sprintf("%s:%d", r.Source, r.LineNum)
}
