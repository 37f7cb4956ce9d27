package parser

import (
	"fmt"
	"strings"
	"time"
)

const (
	// EventTimeLayout parses "04/30/2017 10:00:00AM" followed by a "-0500" style offset.
	// Month, day, hour, minute and second accept one or two digits.
	// The meridiem is upper-cased before parsing, so "am" is accepted too.
	EventTimeLayout = "1/2/2006 3:4:5PM-0700"

	// ISOLayout renders an instant as ISO-8601 with a "+00:00" style offset.
	// time.RFC3339 is not used because it writes "Z" for UTC.
	ISOLayout = "2006-01-02T15:04:05-07:00"

	// DefaultOffset is applied when a record has no timeOffset.
	DefaultOffset = "+0000"
)

// ParseEventTime combines an event timestamp with its optional UTC offset
// ("-05:00") and parses the result as an absolute instant.
func ParseEventTime(timestamp string, offset string, hasOffset bool) (time.Time, error) {
	zone := DefaultOffset
	if hasOffset {
		zone = strings.ReplaceAll(offset, ":", "")
	}

	value := strings.ToUpper(timestamp) + zone
	ts, err := time.Parse(EventTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing %q: %v", ErrMalformedTimestamp, value, err)
	}
	return ts, nil
}

// FormatISO renders t as ISO-8601 keeping its original offset.
func FormatISO(t time.Time) string {
	return t.Format(ISOLayout)
}
