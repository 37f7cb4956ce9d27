// Package analyzer classifies activity events, drops duplicates and computes usage statistics.
package analyzer

import "time"

// Category is the coarse action class of an event.
type Category string

const (
	CategoryAdd      Category = "ADD"
	CategoryRemove   Category = "REMOVE"
	CategoryAccessed Category = "ACCESSED"
)

// DropReason explains why an event was left out of the table.
type DropReason string

const (
	// DropReasonNoMapping marks an activity with no category.
	DropReasonNoMapping DropReason = "No action mapping"

	// DropReasonDuplicate marks a repeat of an already retained eventId.
	DropReasonDuplicate DropReason = "Duplicates"
)

// Header is the first row of the normalized table.
var Header = []string{"TIMESTAMP", "ACTION", "USER", "FOLDER", "FILENAME", "IP"}

// Stats is the aggregate usage summary. Field order is the report key order.
type Stats struct {
	LineReads           int           `json:"lineReads"`
	DroppedEventsCounts int           `json:"droppedEventsCounts"`
	DroppedEvents       DroppedEvents `json:"droppedEvents"`
	UniqueUsers         int           `json:"uniqueUsers"`
	UniqueFiles         int           `json:"uniqueFiles"`

	// StartDate and EndDate are nil when no event was retained.
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`

	Actions ActionCounts `json:"actions"`
}

// DroppedEvents breaks down droppedEventsCounts by reason.
type DroppedEvents struct {
	NoActionMapping int `json:"No action mapping"`
	Duplicates      int `json:"Duplicates"`
}

// ActionCounts counts retained events per category.
type ActionCounts struct {
	Add      int `json:"ADD"`
	Remove   int `json:"REMOVE"`
	Accessed int `json:"ACCESSED"`
}

// Total returns the number of retained events.
func (a ActionCounts) Total() int {
	return a.Add + a.Remove + a.Accessed
}

func (a *ActionCounts) inc(c Category) {
	switch c {
	case CategoryAdd:
		a.Add++
	case CategoryRemove:
		a.Remove++
	case CategoryAccessed:
		a.Accessed++
	}
}

// HasDrops returns true if any event was excluded from the table.
func (s *Stats) HasDrops() bool {
	return s.DroppedEventsCounts > 0
}

// Row is one normalized event in the output table.
type Row struct {
	Timestamp string
	Action    Category
	User      string
	Folder    string
	Filename  string
	IP        string
}

// Strings returns the row in Header column order.
func (r Row) Strings() []string {
	return []string{r.Timestamp, string(r.Action), r.User, r.Folder, r.Filename, r.IP}
}

// Result contains the complete analysis output.
type Result struct {
	// Stats is the aggregate summary.
	Stats Stats

	// Rows holds one row per retained event, in input order.
	Rows []Row

	// Metadata provides context about the analysis run.
	Metadata Metadata
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// Sources lists the inputs records were read from.
	Sources []string

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time
}

// Table returns the header followed by every row, ready for a table sink.
func (r *Result) Table() [][]string {
	table := make([][]string, 0, len(r.Rows)+1)
	table = append(table, Header)
	for _, row := range r.Rows {
		table = append(table, row.Strings())
	}
	return table
}
