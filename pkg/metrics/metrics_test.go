package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordReport(t *testing.T) {
	const svc = "test-record-report"

	RecordReport(svc, 3, nil, time.Millisecond)
	RecordReport(svc, 5, errors.New("boom"), time.Millisecond)

	if got := testutil.ToFloat64(ReportsGeneratedTotal.WithLabelValues(svc, "success")); got != 1 {
		t.Errorf("success count = %v", got)
	}
	if got := testutil.ToFloat64(ReportsGeneratedTotal.WithLabelValues(svc, "error")); got != 1 {
		t.Errorf("error count = %v", got)
	}
	if got := testutil.ToFloat64(TripsDerivedTotal.WithLabelValues(svc)); got != 3 {
		t.Errorf("trips from failed report must not count, got %v", got)
	}
}

func TestRecordEntriesAndCache(t *testing.T) {
	const svc = "test-record-entries"

	RecordEntries(svc, 4, 1, 2)
	RecordCache(svc, true)
	RecordCache(svc, false)
	RecordCache(svc, false)

	if got := testutil.ToFloat64(EntriesTotal.WithLabelValues(svc, "dropped")); got != 2 {
		t.Errorf("dropped = %v", got)
	}
	if got := testutil.ToFloat64(ReportCacheTotal.WithLabelValues(svc, "miss")); got != 2 {
		t.Errorf("misses = %v", got)
	}
}
