package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("GET", "/api/v1/filters/branches", 200, 30*time.Millisecond)
	metrics.ObserveRequest("GET", "/api/v1/filters/branches", 200, 20*time.Millisecond)
	metrics.ObserveRequest("POST", "/api/v1/export/transfer-orders", 422, 5*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/api/v1/filters/branches"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected requests=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "status", "422"); err != nil {
		t.Fatalf("fetch requests by status: %v", err)
	} else if got != 1 {
		t.Fatalf("expected one 422, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/api/v1/filters/branches"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestExportMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewExportMetrics(reg)
	metrics.IncGenerated("SMOUTRIGHT", 120)
	metrics.IncGenerated("SMOUTRIGHT", 30)
	metrics.IncEmpty("VCH")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "export_workbooks_total", "chain", "SMOUTRIGHT"); err != nil {
		t.Fatalf("fetch generated: %v", err)
	} else if got != 2 {
		t.Fatalf("expected generated=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "export_empty_total", "chain", "VCH"); err != nil {
		t.Fatalf("fetch empty: %v", err)
	} else if got != 1 {
		t.Fatalf("expected empty=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "export_rows", "chain", "SMOUTRIGHT"); err != nil {
		t.Fatalf("fetch rows: %v", err)
	} else if got != 150 {
		t.Fatalf("expected rows sum=150, got %f", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	metrics := NewHTTPMetrics(nil)
	metrics.ObserveRequest("GET", "/ping", 200, time.Millisecond)

	exports := NewExportMetrics(nil)
	exports.IncGenerated("VCH", 10)
	exports.IncEmpty("")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	var total float64
	matched := false
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			total += metric.GetCounter().GetValue()
			matched = true
		}
	}
	if !matched {
		return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
	}
	return total, nil
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
