package report

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/artifact"
	"github.com/kailas-cloud/inventory/internal/config"
	"github.com/kailas-cloud/inventory/internal/cql"
	"github.com/kailas-cloud/inventory/internal/domain"
	"github.com/kailas-cloud/inventory/internal/domain/query"
	domreport "github.com/kailas-cloud/inventory/internal/domain/report"
	"github.com/kailas-cloud/inventory/internal/i18n"
	"github.com/kailas-cloud/inventory/internal/logger"
	"github.com/kailas-cloud/inventory/internal/metrics"
	"github.com/kailas-cloud/inventory/internal/notify"
)

// DefaultIDReportNotifyAfter is how long the id report runs before the user is told to wait.
const DefaultIDReportNotifyAfter = 3 * time.Second

// Config holds report settings.
type Config struct {
	IDReportNotifyAfter time.Duration
	// Env is the environment mode. In config.EnvTest the CQL export writes nothing.
	Env string
}

// Service runs the list view's reports. Each kind has one process-wide job
// guard; a trigger that finds its kind running is ignored.
type Service struct {
	ids       Resource
	inTransit Resource
	ref       RefData
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time

	idJob        *domreport.Job
	inTransitJob *domreport.Job
}

// New creates a report service.
func New(ids, inTransit Resource, ref RefData, cfg Config, logger *zap.Logger) *Service {
	if cfg.IDReportNotifyAfter <= 0 {
		cfg.IDReportNotifyAfter = DefaultIDReportNotifyAfter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ids:          ids,
		inTransit:    inTransit,
		ref:          ref,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
		idJob:        domreport.NewJob(domreport.KindIDReport),
		inTransitJob: domreport.NewJob(domreport.KindInTransitReport),
	}
}

// InProgress reports whether a run of kind is in flight.
func (s *Service) InProgress(kind domreport.Kind) bool {
	switch kind {
	case domreport.KindIDReport:
		return s.idJob.InProgress()
	case domreport.KindInTransitReport:
		return s.inTransitJob.InProgress()
	default:
		return false
	}
}

// GenerateIDReport exports the ids of every instance matching q as a
// headerless one-column CSV. If the fetch outlasts the configured delay the
// sink gets an info notice. Failures are reported to the sink and logged,
// never returned.
func (s *Service) GenerateIDReport(ctx context.Context, q query.SearchQuery, sink Sink) (domreport.Outcome, error) {
	if !s.idJob.TryStart() {
		return s.finish(domreport.KindIDReport, domreport.Ignored, time.Time{}, 0), nil
	}
	defer s.idJob.Finish()

	start := s.now()
	log := logger.FromContextOr(ctx, s.logger)
	tr := i18n.FromContext(ctx)

	s.ids.Reset()

	ref, err := s.ref.Load(ctx)
	if err != nil {
		return s.idReportFailed(ctx, sink, log, start, err), nil
	}
	expr := cql.Build(q, ref, cql.Options{Logger: cql.NewZapLogger(log)})

	info := time.AfterFunc(s.cfg.IDReportNotifyAfter, func() {
		sink.Notify(ctx, notify.Notification{Level: notify.LevelInfo, Message: tr.T(i18n.KeyIDReportInfo)})
	})
	recs, err := s.ids.Fetch(ctx, url.Values{"query": {expr}})
	info.Stop()

	if err != nil {
		return s.idReportFailed(ctx, sink, log, start, err), nil
	}
	if len(recs) == 0 {
		return s.finish(domreport.KindIDReport, domreport.EmptyResult, start, 0), nil
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{r.ID()})
	}
	a, err := artifact.CSV(artifact.FileName(artifact.PrefixIDReport, s.now(), "csv"), nil, rows)
	if err != nil {
		return s.idReportFailed(ctx, sink, log, start, err), nil
	}
	if err := sink.Download(ctx, a); err != nil {
		return s.idReportFailed(ctx, sink, log, start, err), nil
	}
	return s.finish(domreport.KindIDReport, domreport.Succeeded, start, len(rows)), nil
}

func (s *Service) idReportFailed(ctx context.Context, sink Sink, log *zap.Logger, start time.Time, err error) domreport.Outcome {
	log.Warn("Instance id report failed", zap.Error(err))
	sink.Notify(ctx, notify.Notification{
		Level:   notify.LevelError,
		Message: i18n.FromContext(ctx).T(i18n.KeyIDReportError),
	})
	return s.finish(domreport.KindIDReport, domreport.Failed, start, 0)
}

// GenerateInTransitReport exports every item in transit as a CSV with a
// localized header row. An empty result opens a modal instead. A fetch
// failure is reported to the sink and returned once the job is idle again.
func (s *Service) GenerateInTransitReport(ctx context.Context, sink Sink) (domreport.Outcome, error) {
	if !s.inTransitJob.TryStart() {
		return s.finish(domreport.KindInTransitReport, domreport.Ignored, time.Time{}, 0), nil
	}
	defer s.inTransitJob.Finish()

	start := s.now()
	tr := i18n.FromContext(ctx)

	s.inTransit.Reset()

	recs, err := s.inTransit.Fetch(ctx, nil)
	if err != nil {
		sink.Notify(ctx, notify.Notification{Level: notify.LevelError, Message: tr.T(i18n.KeyInTransitError)})
		s.finish(domreport.KindInTransitReport, domreport.Failed, start, 0)
		if !errors.Is(err, domain.ErrFetchFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrFetchFailure, err)
		}
		return domreport.Failed, fmt.Errorf("in-transit report: %w", err)
	}

	if len(recs) == 0 {
		sink.OpenModal(ctx, notify.Modal{
			Label:   tr.T(i18n.KeyInTransitLabel),
			Message: tr.T(i18n.KeyInTransitEmpty),
		})
		return s.finish(domreport.KindInTransitReport, domreport.EmptyResult, start, 0), nil
	}

	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, InTransitRow(r))
	}
	name := artifact.FileName(artifact.PrefixInTransitReport, s.now(), "csv")
	a, err := artifact.CSV(name, tr.InTransitHeader(), rows)
	if err != nil {
		s.finish(domreport.KindInTransitReport, domreport.Failed, start, 0)
		return domreport.Failed, fmt.Errorf("in-transit report: %w", err)
	}
	if err := sink.Download(ctx, a); err != nil {
		s.finish(domreport.KindInTransitReport, domreport.Failed, start, 0)
		return domreport.Failed, fmt.Errorf("in-transit report: download: %w", err)
	}
	return s.finish(domreport.KindInTransitReport, domreport.Succeeded, start, len(rows)), nil
}

// ExportCQL saves the expression equivalent to q as a text file. The build
// runs with a no-op logger. In the test environment nothing is written and
// domain.ErrExportDisabled is returned.
func (s *Service) ExportCQL(ctx context.Context, q query.SearchQuery, sink Sink) (domreport.Outcome, error) {
	if s.cfg.Env == config.EnvTest {
		s.finish(domreport.KindCQLQuery, domreport.Ignored, time.Time{}, 0)
		return domreport.Ignored, domain.ErrExportDisabled
	}

	start := s.now()
	ref, err := s.ref.Load(ctx)
	if err != nil {
		s.finish(domreport.KindCQLQuery, domreport.Failed, start, 0)
		return domreport.Failed, fmt.Errorf("load reference data: %w", err)
	}

	expr := cql.Build(q, ref, cql.Options{Logger: cql.NopLogger{}})
	a := artifact.Text(artifact.FileName(artifact.PrefixCQLQuery, s.now(), "cql"), expr)
	if err := sink.Download(ctx, a); err != nil {
		s.finish(domreport.KindCQLQuery, domreport.Failed, start, 0)
		return domreport.Failed, fmt.Errorf("cql export: download: %w", err)
	}
	return s.finish(domreport.KindCQLQuery, domreport.Succeeded, start, 1), nil
}

func (s *Service) finish(kind domreport.Kind, outcome domreport.Outcome, start time.Time, records int) domreport.Outcome {
	metrics.ReportsTotal.WithLabelValues(string(kind), string(outcome)).Inc()
	if !start.IsZero() {
		metrics.ReportDuration.WithLabelValues(string(kind)).Observe(s.now().Sub(start).Seconds())
	}
	if outcome == domreport.Succeeded {
		metrics.ReportRecords.WithLabelValues(string(kind)).Observe(float64(records))
	}
	return outcome
}

// InTransitRow flattens an in-transit item into the report columns.
func InTransitRow(r domain.Record) []string {
	contributors := make([]string, 0)
	for _, c := range r.Objects("contributors") {
		if n := c.String("name"); n != "" {
			contributors = append(contributors, n)
		}
	}

	request := r.Object("request")
	return []string{
		r.String("barcode"),
		r.String("title"),
		strings.Join(contributors, "; "),
		callNumber(r),
		r.String("enumeration"),
		r.String("volume"),
		strings.Join(r.Strings("yearCaption"), ", "),
		r.Path("status.name"),
		r.Path("location.name"),
		r.Path("inTransitDestinationServicePoint.name"),
		request.String("requestType"),
		request.String("requestPatronGroup"),
		request.String("requestDate"),
		request.String("requestExpirationDate"),
		request.String("requestPickupServicePointName"),
		r.Path("lastCheckIn.dateTime"),
		r.Path("lastCheckIn.servicePoint.name"),
	}
}

func callNumber(r domain.Record) string {
	if cn := r.Path("callNumberComponents.callNumber"); cn != "" {
		parts := []string{
			r.Path("callNumberComponents.prefix"),
			cn,
			r.Path("callNumberComponents.suffix"),
		}
		out := parts[:0]
		for _, p := range parts {
			if p != "" {
				out = append(out, p)
			}
		}
		return strings.Join(out, " ")
	}
	return r.String("callNumber")
}
