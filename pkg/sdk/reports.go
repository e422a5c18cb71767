package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/inventory/internal/artifact"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/notify"
	reportuc "github.com/kailas-cloud/inventory/internal/usecase/report"
)

// Sink receives what a report run produces.
type Sink interface {
	// Save stores a produced file.
	Save(ctx context.Context, a Artifact) error
	// Notice shows a message to the user.
	Notice(ctx context.Context, n Notice)
}

// ReportService runs exports.
type ReportService struct {
	svc     reportUseCase
	printer *i18n.Printer
	obs     *observer
}

// IDs exports the ids of every instance matching q as a headerless CSV.
// Backend failures are reported to the sink as an error notice and yield
// OutcomeFailed with a nil error.
func (s *ReportService) IDs(ctx context.Context, q Query, sink Sink) (_ Outcome, err error) {
	start := time.Now()
	defer func() { s.obs.observe("report.ids", start, err) }()

	sq, err := toInternalQuery(q)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("id report: %w", err)
	}
	outcome, err := s.svc.GenerateIDReport(s.localized(ctx), sq, sinkAdapter{inner: sink})
	if err != nil {
		return Outcome(outcome), fmt.Errorf("id report: %w", err)
	}
	return Outcome(outcome), nil
}

// InTransit exports every item currently in transit. An empty result opens
// a modal notice; a backend failure is returned wrapped in ErrFetchFailure.
func (s *ReportService) InTransit(ctx context.Context, sink Sink) (_ Outcome, err error) {
	start := time.Now()
	defer func() { s.obs.observe("report.in_transit", start, err) }()

	outcome, err := s.svc.GenerateInTransitReport(s.localized(ctx), sinkAdapter{inner: sink})
	if err != nil {
		return Outcome(outcome), fmt.Errorf("in-transit report: %w", err)
	}
	return Outcome(outcome), nil
}

// CQL saves the CQL expression for q as a text file.
func (s *ReportService) CQL(ctx context.Context, q Query, sink Sink) (_ Outcome, err error) {
	start := time.Now()
	defer func() { s.obs.observe("report.cql", start, err) }()

	sq, err := toInternalQuery(q)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("cql export: %w", err)
	}
	outcome, err := s.svc.ExportCQL(s.localized(ctx), sq, sinkAdapter{inner: sink})
	if err != nil {
		return Outcome(outcome), fmt.Errorf("cql export: %w", err)
	}
	return Outcome(outcome), nil
}

func (s *ReportService) localized(ctx context.Context) context.Context {
	if s.printer == nil {
		return ctx
	}
	return i18n.ContextWithPrinter(ctx, s.printer)
}

// sinkAdapter wraps a public Sink to satisfy the internal report sink.
type sinkAdapter struct {
	inner Sink
}

func (a sinkAdapter) Download(ctx context.Context, art artifact.Artifact) error {
	if err := a.inner.Save(ctx, Artifact{Name: art.Name, ContentType: art.ContentType, Body: art.Body}); err != nil {
		return fmt.Errorf("save %s: %w", art.Name, err)
	}
	return nil
}

func (a sinkAdapter) Notify(ctx context.Context, n notify.Notification) {
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}
	a.inner.Notice(ctx, Notice{Level: NoticeLevel(n.Level), Message: n.Message, At: at})
}

func (a sinkAdapter) OpenModal(ctx context.Context, m notify.Modal) {
	a.inner.Notice(ctx, Notice{Level: NoticeModal, Title: m.Label, Message: m.Message, At: time.Now()})
}

var _ reportuc.Sink = sinkAdapter{}

// DirSink returns a Sink that writes files into dir and passes notices to onNotice.
// A nil onNotice drops notices.
func DirSink(dir string, onNotice func(Notice)) Sink {
	return &dirSink{dir: dir, onNotice: onNotice}
}

type dirSink struct {
	dir      string
	onNotice func(Notice)
	saved    []string
}

func (s *dirSink) Save(ctx context.Context, a Artifact) error {
	ds, err := artifact.NewDirSink(s.dir)
	if err != nil {
		return err
	}
	path, err := ds.Save(ctx, artifact.Artifact{Name: a.Name, ContentType: a.ContentType, Body: a.Body})
	if err != nil {
		return err
	}
	s.saved = append(s.saved, path)
	return nil
}

func (s *dirSink) Notice(_ context.Context, n Notice) {
	if s.onNotice != nil {
		s.onNotice(n)
	}
}

// SavedPaths lists the files a DirSink wrote, in order.
func SavedPaths(sink Sink) []string {
	if ds, ok := sink.(*dirSink); ok {
		return append([]string(nil), ds.saved...)
	}
	return nil
}
