package inventory

import "time"

// Segment selects which record type a query searches.
type Segment string

// Segment constants.
const (
	SegmentInstances Segment = "instances"
	SegmentHoldings  Segment = "holdings"
	SegmentItems     Segment = "items"
)

// Query is the search state of a list view.
type Query struct {
	Segment Segment // empty means instances
	Index   string  // search index, e.g. "title"; empty means all fields
	Term    string
	Filters []Filter
	Sort    string // comma-separated keys, '-' prefix sorts descending
}

// Filter selects values of one filter group.
type Filter struct {
	Name   string
	Values []string
}

// Row is one formatted instance of a result list.
type Row struct {
	ID              string
	Title           string
	Contributors    string
	Publishers      string
	PublicationDate string
	Relation        string
}

// Page is one page of search results.
type Page struct {
	Rows      []Row
	Total     int
	Offset    int
	Limit     int
	NextLimit int // page size after one more "load more"
	CQL       string
}

// Outcome is how a report run ended.
type Outcome string

// Outcome constants.
const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeEmpty     Outcome = "empty_result"
	OutcomeFailed    Outcome = "failed"
	OutcomeIgnored   Outcome = "ignored"
)

// Artifact is a file produced by a report.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// NoticeLevel is the severity of a Notice.
type NoticeLevel string

// Notice levels. NoticeModal is a dialog the user has to dismiss.
const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
	NoticeModal NoticeLevel = "modal"
)

// Notice is a message a report run wants shown to the user.
type Notice struct {
	Level   NoticeLevel
	Title   string // set for modals
	Message string
	At      time.Time
}

// Vocabulary is a controlled vocabulary listing.
type Vocabulary struct {
	ID       string
	Label    string
	Columns  []string
	ReadOnly []string
	Entries  []VocabularyEntry
}

// VocabularyEntry is one term of a vocabulary.
type VocabularyEntry struct {
	Fields    map[string]any
	CanEdit   bool
	CanDelete bool
}
