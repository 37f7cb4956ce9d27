package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ccollicutt/actlog/pkg/parser"
)

// Aggregator classifies, deduplicates and normalizes records one at a time.
// Records must be fed in input order; that order decides which duplicate wins
// and is kept in the output rows. Not safe for concurrent use.
type Aggregator struct {
	taxonomy *Taxonomy
	metrics  *Metrics

	// State
	stats    Stats
	rows     []Row
	eventIDs map[any]struct{}
	users    map[string]struct{}
	files    map[string]struct{}
	start    time.Time
	end      time.Time
	hasRange bool
}

// NewAggregator creates an aggregator using the given taxonomy.
// metrics may be nil.
func NewAggregator(taxonomy *Taxonomy, metrics *Metrics) *Aggregator {
	a := &Aggregator{taxonomy: taxonomy, metrics: metrics}
	a.Reset()
	return a
}

// Reset clears internal state for reuse.
func (a *Aggregator) Reset() {
	a.stats = Stats{}
	a.rows = nil
	a.eventIDs = make(map[any]struct{})
	a.users = make(map[string]struct{})
	a.files = make(map[string]struct{})
	a.start = time.Time{}
	a.end = time.Time{}
	a.hasRange = false
}

// Process handles a single record.
// Duplicates and unmapped activities are counted and dropped. A missing
// required field or an unparseable timestamp is returned as a fatal error.
func (a *Aggregator) Process(_ context.Context, rec *parser.Record) error {
	a.stats.LineReads++
	a.metrics.observeRead()

	id, err := rec.EventID()
	if err != nil {
		return err
	}
	if _, seen := a.eventIDs[id]; seen {
		a.drop(DropReasonDuplicate)
		return nil
	}

	activity, err := rec.String(parser.FieldActivity)
	if err != nil {
		return err
	}
	category, ok := a.taxonomy.Classify(activity)
	if !ok {
		// The id is not registered, so a later mappable record with the
		// same id is still a first occurrence.
		a.drop(DropReasonNoMapping)
		return nil
	}
	a.stats.Actions.inc(category)
	a.eventIDs[id] = struct{}{}

	user, err := rec.String(parser.FieldUser)
	if err != nil {
		return err
	}
	if _, seen := a.users[user]; !seen {
		a.users[user] = struct{}{}
		a.stats.UniqueUsers++
	}

	file, err := rec.String(parser.FieldFile)
	if err != nil {
		return err
	}
	if _, seen := a.files[file]; !seen {
		a.files[file] = struct{}{}
		a.stats.UniqueFiles++
	}

	ts, err := eventTime(rec)
	if err != nil {
		return err
	}
	if !a.hasRange {
		a.start, a.end, a.hasRange = ts, ts, true
	} else {
		if ts.Before(a.start) {
			a.start = ts
		}
		if ts.After(a.end) {
			a.end = ts
		}
	}

	ip, err := rec.String(parser.FieldIPAddr)
	if err != nil {
		return err
	}

	folder, filename := splitPath(file)
	a.rows = append(a.rows, Row{
		Timestamp: parser.FormatISO(ts),
		Action:    category,
		User:      localPart(user),
		Folder:    folder,
		Filename:  filename,
		IP:        ip,
	})
	a.metrics.observeRetained(category)

	return nil
}

// Finalize renders the date range and returns the accumulated stats and rows.
func (a *Aggregator) Finalize() (Stats, []Row) {
	stats := a.stats
	if a.hasRange {
		start := parser.FormatISO(a.start)
		end := parser.FormatISO(a.end)
		stats.StartDate = &start
		stats.EndDate = &end
	}
	return stats, a.rows
}

func (a *Aggregator) drop(reason DropReason) {
	a.stats.DroppedEventsCounts++
	switch reason {
	case DropReasonDuplicate:
		a.stats.DroppedEvents.Duplicates++
	case DropReasonNoMapping:
		a.stats.DroppedEvents.NoActionMapping++
	}
	a.metrics.observeDrop(reason)
}

func eventTime(rec *parser.Record) (time.Time, error) {
	timestamp, err := rec.String(parser.FieldTimestamp)
	if err != nil {
		return time.Time{}, err
	}
	offset, hasOffset, err := rec.OptionalString(parser.FieldTimeOffset)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := parser.ParseEventTime(timestamp, offset, hasOffset)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s:%d: %w", rec.Source, rec.LineNum, err)
	}
	return ts, nil
}

// localPart returns the user identity before the first "@".
func localPart(user string) string {
	local, _, _ := strings.Cut(user, "@")
	return local
}

// splitPath separates the last "/" segment of a path from its folder.
// A path without "/" has an empty folder.
func splitPath(path string) (folder, filename string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
