package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewStoreMetrics(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("NewStoreMetricsWithRegisterer should not return nil")
	}

	if metrics.opsTotal == nil {
		t.Error("opsTotal counter vec should not be nil")
	}

	if metrics.errorsTotal == nil {
		t.Error("errorsTotal counter vec should not be nil")
	}

	if metrics.opDuration == nil {
		t.Error("opDuration histogram vec should not be nil")
	}

	if metrics.exportedDocuments == nil {
		t.Error("exportedDocuments counter should not be nil")
	}

	if metrics.importedEntities == nil {
		t.Error("importedEntities counter vec should not be nil")
	}
}

func TestNewStoreMetrics_ReregisterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewStoreMetricsWithRegisterer(reg)
	second := NewStoreMetricsWithRegisterer(reg)

	if first.opsTotal != second.opsTotal {
		t.Error("re-registration should return the existing collector")
	}
}

func TestObserveOp(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.ObserveOp("client", "add", 10*time.Millisecond, nil)
	metrics.ObserveOp("client", "add", 20*time.Millisecond, nil)
	metrics.ObserveOp("client", "add", 5*time.Millisecond, errors.New("boom"))

	metric := &dto.Metric{}
	if err := metrics.opsTotal.WithLabelValues("client", "add").Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 3.0 {
		t.Errorf("expected 3 operations, got %f", metric.Counter.GetValue())
	}

	errMetric := &dto.Metric{}
	if err := metrics.errorsTotal.WithLabelValues("client", "add").Write(errMetric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if errMetric.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 error, got %f", errMetric.Counter.GetValue())
	}

	histMetric := &dto.Metric{}
	observer := metrics.opDuration.WithLabelValues("client", "add")
	if err := observer.(prometheus.Histogram).Write(histMetric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if histMetric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", histMetric.Histogram.GetSampleCount())
	}
}

func TestObserveOp_LabelsAreIndependent(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.ObserveOp("order", "add", time.Millisecond, nil)
	metrics.ObserveOp("order", "delete", time.Millisecond, nil)
	metrics.ObserveOp("product", "add", time.Millisecond, nil)

	metric := &dto.Metric{}
	if err := metrics.opsTotal.WithLabelValues("order", "add").Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1.0 {
		t.Errorf("expected 1 order add, got %f", metric.Counter.GetValue())
	}
}

func TestRecordExport(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordExport()
	metrics.RecordExport()

	metric := &dto.Metric{}
	if err := metrics.exportedDocuments.Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2.0 {
		t.Errorf("expected 2 exports, got %f", metric.Counter.GetValue())
	}
}

func TestRecordImported(t *testing.T) {
	metrics := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordImported("client", 2)
	metrics.RecordImported("client", 3)
	metrics.RecordImported("order", 1)

	metric := &dto.Metric{}
	if err := metrics.importedEntities.WithLabelValues("client").Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 5.0 {
		t.Errorf("expected 5 imported clients, got %f", metric.Counter.GetValue())
	}
}
