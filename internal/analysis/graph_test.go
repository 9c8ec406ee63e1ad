package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcore/internal/analysis"
	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

func TestClientGraph_ReferenceScenario(t *testing.T) {
	f := newFixture()
	f.seed(t)

	graph, err := f.analyzer.ClientGraph()
	require.NoError(t, err)

	nodes := graph.Nodes()
	require.Len(t, nodes, 2)
	require.Equal(t, "Иван Петров", nodes[0].Name)
	require.Equal(t, "Анна Сидорова", nodes[1].Name)

	// Единственный общий товар — книга, поэтому ровно одно ребро веса 1.
	edges := graph.Edges()
	require.Len(t, edges, 1)
	require.Equal(t, analysis.GraphEdge{A: 1, B: 2, Weight: 1}, edges[0])

	require.True(t, graph.HasEdge(1, 2))
	require.True(t, graph.HasEdge(2, 1))
	require.Equal(t, int64(1), graph.Weight(1, 2))
	require.Equal(t, int64(1), graph.Weight(2, 1))
	require.Equal(t, int64(1), graph.Degree(1))
	require.Equal(t, int64(1), graph.Degree(2))
}

func TestClientGraph_NoCommonProducts(t *testing.T) {
	lines := []analysis.OrderLine{
		{OrderID: 1, ClientID: 1, ClientName: "A", ProductID: 10},
		{OrderID: 2, ClientID: 2, ClientName: "B", ProductID: 20},
	}

	graph := analysis.BuildClientGraph(lines)
	require.Len(t, graph.Nodes(), 2)
	require.Empty(t, graph.Edges())
	require.False(t, graph.HasEdge(1, 2))
	require.Zero(t, graph.Weight(1, 2))
	require.Zero(t, graph.Degree(1))
}

func TestClientGraph_WeightIsIntersectionSize(t *testing.T) {
	lines := []analysis.OrderLine{
		{OrderID: 1, ClientID: 1, ClientName: "A", ProductID: 10},
		{OrderID: 1, ClientID: 1, ClientName: "A", ProductID: 20},
		{OrderID: 2, ClientID: 1, ClientName: "A", ProductID: 30},
		{OrderID: 3, ClientID: 2, ClientName: "B", ProductID: 10},
		{OrderID: 3, ClientID: 2, ClientName: "B", ProductID: 30},
		{OrderID: 4, ClientID: 3, ClientName: "C", ProductID: 30},
	}

	graph := analysis.BuildClientGraph(lines)
	require.Equal(t, int64(2), graph.Weight(1, 2))
	require.Equal(t, int64(1), graph.Weight(1, 3))
	require.Equal(t, int64(1), graph.Weight(2, 3))
	require.Equal(t, int64(2), graph.Degree(1))

	edges := graph.Edges()
	require.Len(t, edges, 3)
}

// Повторные покупки того же товара не увеличивают вес ребра:
// вес считается по множеству товаров, а не по числу позиций.
func TestClientGraph_RepeatPurchasesDoNotInflate(t *testing.T) {
	lines := []analysis.OrderLine{
		{OrderID: 1, ClientID: 1, ClientName: "A", ProductID: 10},
		{OrderID: 2, ClientID: 1, ClientName: "A", ProductID: 10},
		{OrderID: 3, ClientID: 2, ClientName: "B", ProductID: 10},
		{OrderID: 4, ClientID: 2, ClientName: "B", ProductID: 10},
	}

	graph := analysis.BuildClientGraph(lines)
	require.Equal(t, int64(1), graph.Weight(1, 2))
}

func TestClientGraph_ClientsComeFromOrdersOnly(t *testing.T) {
	f := newFixture()
	_, err := f.clients.Add(domain.Client{Name: "Без заказов", Email: "idle@example.com", Phone: "+79000000001"})
	require.NoError(t, err)
	_, err = f.orders.Add(domain.NewOrder(7, []domain.OrderItem{
		domain.NewOrderItem(1, 1, 5),
	}, time.Time{}))
	require.NoError(t, err)

	graph, err := f.analyzer.ClientGraph()
	require.NoError(t, err)

	nodes := graph.Nodes()
	require.Len(t, nodes, 1)
	require.Equal(t, int64(7), nodes[0].ClientID)
	require.Equal(t, "unknown", nodes[0].Name)
}
