// Package report models export jobs and their outcomes.
package report

import "sync/atomic"

// Kind identifies an export.
type Kind string

// Export kinds.
const (
	KindIDReport        Kind = "id_report"
	KindInTransitReport Kind = "in_transit_report"
	KindCQLQuery        Kind = "cql_query"
)

// Outcome is the terminal state of one trigger.
type Outcome string

// Outcomes. EmptyResult is a successful run that matched nothing; Ignored
// means the trigger arrived while the same kind was already running.
const (
	Succeeded   Outcome = "succeeded"
	EmptyResult Outcome = "empty_result"
	Failed      Outcome = "failed"
	Ignored     Outcome = "ignored"
)

// Job guards one export kind so at most one run is in flight.
type Job struct {
	kind       Kind
	inProgress atomic.Bool
}

// NewJob returns an idle job for kind.
func NewJob(kind Kind) *Job {
	return &Job{kind: kind}
}

// Kind returns the export kind.
func (j *Job) Kind() Kind { return j.kind }

// TryStart moves the job to requesting. It returns false when a run is already in flight.
func (j *Job) TryStart() bool {
	return j.inProgress.CompareAndSwap(false, true)
}

// Finish returns the job to idle.
func (j *Job) Finish() {
	j.inProgress.Store(false)
}

// InProgress reports whether a run is in flight.
func (j *Job) InProgress() bool {
	return j.inProgress.Load()
}
