package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterBackendMetrics_Idempotent(t *testing.T) {
	RegisterBackendMetrics()
	RegisterBackendMetrics()

	ReportsTotal.WithLabelValues("id_report", "succeeded").Inc()
	if v := testutil.ToFloat64(ReportsTotal.WithLabelValues("id_report", "succeeded")); v < 1 {
		t.Errorf("reports_total = %f, want >= 1", v)
	}
}
