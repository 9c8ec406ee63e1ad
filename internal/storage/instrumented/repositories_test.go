package instrumented_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/metrics"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/instrumented"
	"github.com/vladislavdragonenkov/shopcore/internal/storage/memory"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name, entity, op string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, entity, op) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(metric *dto.Metric, entity, op string) bool {
	var gotEntity, gotOp string
	for _, label := range metric.GetLabel() {
		switch label.GetName() {
		case "entity":
			gotEntity = label.GetValue()
		case "op":
			gotOp = label.GetValue()
		}
	}
	return gotEntity == entity && gotOp == op
}

func TestInstrumentedClientRepository(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStoreMetricsWithRegisterer(reg)
	clients := instrumented.NewClientRepository(memory.NewClientRepository(), m)

	id, err := clients.Add(domain.Client{Name: "Иван", Email: "ivan@example.com", Phone: "+79161234567"})
	require.NoError(t, err)

	_, err = clients.Get(id)
	require.NoError(t, err)
	_, err = clients.Get(999)
	require.ErrorIs(t, err, domain.ErrClientNotFound)

	require.Equal(t, 1.0, counterValue(t, reg, "shopcore_store_operations_total", "client", "add"))
	require.Equal(t, 2.0, counterValue(t, reg, "shopcore_store_operations_total", "client", "get"))
	require.Equal(t, 1.0, counterValue(t, reg, "shopcore_store_errors_total", "client", "get"))
}

func TestInstrumentedOrderRepository(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStoreMetricsWithRegisterer(reg)
	orders := instrumented.NewOrderRepository(memory.NewOrderRepository(), m)

	id, err := orders.Add(domain.NewOrder(1, []domain.OrderItem{
		domain.NewOrderItem(1, 2, 10),
	}, time.Now()))
	require.NoError(t, err)

	_, err = orders.GetByClient(1)
	require.NoError(t, err)

	ok, err := orders.Delete(id)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, 1.0, counterValue(t, reg, "shopcore_store_operations_total", "order", "add"))
	require.Equal(t, 1.0, counterValue(t, reg, "shopcore_store_operations_total", "order", "get_by_client"))
	require.Equal(t, 1.0, counterValue(t, reg, "shopcore_store_operations_total", "order", "delete"))
	require.Zero(t, counterValue(t, reg, "shopcore_store_errors_total", "order", "add"))
}

// Декоратор прозрачен: значения проходят сквозь него без изменений.
func TestInstrumentedRepositoryPassesValuesThrough(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStoreMetricsWithRegisterer(reg)
	products := instrumented.NewProductRepository(memory.NewProductRepository(), m)

	id, err := products.Add(domain.NewProduct("Книга", 20, "Книги", 50))
	require.NoError(t, err)

	product, err := products.Get(id)
	require.NoError(t, err)
	require.Equal(t, "Книга", product.Name)
	require.Equal(t, 20.0, product.Price)

	ok, err := products.Update(domain.Product{ID: id, Name: "Книга", Price: 25, Category: "Книги", Stock: 49})
	require.NoError(t, err)
	require.True(t, ok)

	updated, err := products.Get(id)
	require.NoError(t, err)
	require.Equal(t, 25.0, updated.Price)
}
