package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics содержит метрики операций хранилища.
type StoreMetrics struct {
	// Счётчики операций по сущностям
	opsTotal    *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec

	// Гистограммы времени выполнения операций
	opDuration *prometheus.HistogramVec

	// Счётчики обмена
	exportedDocuments prometheus.Counter
	importedEntities  *prometheus.CounterVec
}

// NewStoreMetrics создаёт новый экземпляр метрик хранилища.
func NewStoreMetrics() *StoreMetrics {
	return NewStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStoreMetricsWithRegisterer регистрирует метрики в переданном
// реестре. Повторная регистрация возвращает уже существующие коллекторы.
func NewStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		opsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopcore_store_operations_total",
			Help: "Total number of store operations by entity and operation",
		}, []string{"entity", "op"}),
		errorsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopcore_store_errors_total",
			Help: "Total number of failed store operations by entity and operation",
		}, []string{"entity", "op"}),
		opDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "shopcore_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"entity", "op"}),
		exportedDocuments: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcore_exported_documents_total",
			Help: "Total number of full-store documents exported",
		}),
		importedEntities: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopcore_imported_entities_total",
			Help: "Total number of entities applied during imports",
		}, []string{"entity"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// ObserveOp записывает одну операцию хранилища: счётчик, длительность
// и, при ошибке, счётчик ошибок.
func (m *StoreMetrics) ObserveOp(entity, op string, duration time.Duration, err error) {
	m.opsTotal.WithLabelValues(entity, op).Inc()
	m.opDuration.WithLabelValues(entity, op).Observe(duration.Seconds())
	if err != nil {
		m.errorsTotal.WithLabelValues(entity, op).Inc()
	}
}

// RecordExport увеличивает счётчик выгруженных документов.
func (m *StoreMetrics) RecordExport() {
	m.exportedDocuments.Inc()
}

// RecordImported увеличивает счётчик применённых при импорте сущностей.
func (m *StoreMetrics) RecordImported(entity string, count int) {
	m.importedEntities.WithLabelValues(entity).Add(float64(count))
}
