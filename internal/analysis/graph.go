package analysis

import (
	"sort"
)

// GraphNode — вершина графа схожести: клиент, встречающийся в заказах.
type GraphNode struct {
	ClientID int64
	Name     string
}

// GraphEdge — ребро между парой клиентов. Вес — число общих товаров.
// Пара хранится упорядоченной: A < B.
type GraphEdge struct {
	A      int64
	B      int64
	Weight int64
}

// ClientGraph — граф схожести клиентов по пересечению множеств купленных
// товаров. Каждая неупорядоченная пара учитывается один раз, поэтому вес
// ребра равен мощности пересечения без задвоения.
type ClientGraph struct {
	nodes   map[int64]GraphNode
	weights map[[2]int64]int64
}

// BuildClientGraph строит граф по плоскому представлению заказов.
// Клиенты с висячими ссылками попадают в граф с именем-заглушкой,
// как и в самом представлении.
func BuildClientGraph(lines []OrderLine) *ClientGraph {
	nodes := make(map[int64]GraphNode)
	purchased := make(map[int64]map[int64]struct{})
	for _, line := range lines {
		if _, ok := nodes[line.ClientID]; !ok {
			nodes[line.ClientID] = GraphNode{ClientID: line.ClientID, Name: line.ClientName}
			purchased[line.ClientID] = make(map[int64]struct{})
		}
		purchased[line.ClientID][line.ProductID] = struct{}{}
	}

	ids := make([]int64, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	weights := make(map[[2]int64]int64)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			common := intersectionSize(purchased[ids[i]], purchased[ids[j]])
			if common > 0 {
				weights[edgeKey(ids[i], ids[j])] = common
			}
		}
	}

	return &ClientGraph{nodes: nodes, weights: weights}
}

// ClientGraph строит граф схожести по текущему содержимому хранилища.
func (a *Analyzer) ClientGraph() (*ClientGraph, error) {
	lines, err := a.OrderLines()
	if err != nil {
		return nil, err
	}
	return BuildClientGraph(lines), nil
}

// Nodes возвращает вершины графа, отсортированные по идентификатору клиента.
func (g *ClientGraph) Nodes() []GraphNode {
	nodes := make([]GraphNode, 0, len(g.nodes))
	for _, node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ClientID < nodes[j].ClientID })
	return nodes
}

// Edges возвращает рёбра графа, отсортированные по парам вершин.
func (g *ClientGraph) Edges() []GraphEdge {
	edges := make([]GraphEdge, 0, len(g.weights))
	for key, weight := range g.weights {
		edges = append(edges, GraphEdge{A: key[0], B: key[1], Weight: weight})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Weight возвращает вес ребра между двумя клиентами, 0 — если ребра нет.
func (g *ClientGraph) Weight(a, b int64) int64 {
	return g.weights[edgeKey(a, b)]
}

// HasEdge сообщает, связаны ли два клиента хотя бы одним общим товаром.
func (g *ClientGraph) HasEdge(a, b int64) bool {
	_, ok := g.weights[edgeKey(a, b)]
	return ok
}

// Degree возвращает число соседей клиента в графе.
func (g *ClientGraph) Degree(id int64) int64 {
	var degree int64
	for key := range g.weights {
		if key[0] == id || key[1] == id {
			degree++
		}
	}
	return degree
}

func edgeKey(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

func intersectionSize(a, b map[int64]struct{}) int64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var n int64
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}
