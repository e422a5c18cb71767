package inventory

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values for inventory_sdk_operations_total.
const (
	statusOK        = "ok"
	statusNotFound  = "not_found"
	statusForbidden = "forbidden"
	statusInvalid   = "invalid"
	statusDisabled  = "disabled"
	statusBackend   = "backend_error"
	statusError     = "error"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK calls by operation and outcome class.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventory",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK call latency. Report exports include every backend page fetch.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 30, 60},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse lets several clients share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("inventory: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("inventory: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// classify maps an operation error onto a status label.
func classify(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownVocabulary):
		return statusNotFound
	case errors.Is(err, ErrForbidden):
		return statusForbidden
	case errors.Is(err, ErrInvalidRequest):
		return statusInvalid
	case errors.Is(err, ErrExportDisabled):
		return statusDisabled
	case errors.Is(err, ErrFetchFailure):
		return statusBackend
	default:
		return statusError
	}
}

// observer logs and counts SDK calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := classify(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch status {
	case statusOK:
		o.logger.Debug("inventory call completed", "op", op, "duration", dur)
	case statusBackend, statusError:
		o.logger.Warn("inventory call failed", "op", op, "status", status, "duration", dur, "error", err)
	default:
		// Caller-side problems: rejected input, missing record, missing permission.
		o.logger.Info("inventory call rejected", "op", op, "status", status, "error", err)
	}
}
