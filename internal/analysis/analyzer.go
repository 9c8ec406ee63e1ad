// Package analysis строит производные представления поверх репозиториев:
// плоский список позиций, сводки по клиентам и товарам, общая статистика
// продаж. Представления пересчитываются при каждом вызове, кэша нет.
package analysis

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
)

// unknownLabel подставляется вместо имени клиента или товара,
// когда ссылка из заказа никуда не ведёт.
const unknownLabel = "unknown"

// OrderLine — одна строка плоского представления: заказ × позиция.
type OrderLine struct {
	OrderID     int64
	ClientID    int64
	ClientName  string
	OrderDate   time.Time
	ProductID   int64
	ProductName string
	Category    string
	Quantity    int64
	Price       float64
	Total       float64
}

// ClientSummary — сводка по одному клиенту.
type ClientSummary struct {
	ClientID    int64
	Name        string
	Email       string
	OrdersCount int64
	TotalSpent  float64
}

// ProductSummary — сводка продаж по одному товару.
type ProductSummary struct {
	ProductID    int64
	Name         string
	Category     string
	Price        float64
	TotalSold    int64
	TotalRevenue float64
}

// SalesStatistics — общие показатели магазина.
type SalesStatistics struct {
	TotalOrders        int64
	TotalRevenue       float64
	AvgOrderValue      float64
	TotalClients       int64
	AvgOrdersPerClient float64
}

// DailyPoint — количество заказов и выручка за один день.
type DailyPoint struct {
	Date    time.Time
	Orders  int64
	Revenue float64
}

// CategoryStat — число товаров и выручка по одной категории.
type CategoryStat struct {
	Category     string
	Products     int64
	TotalRevenue float64
}

// Analyzer пересчитывает производные представления по данным репозиториев.
type Analyzer struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	logger   *log.Entry
}

// NewAnalyzer создаёт анализатор поверх репозиториев хранилища.
func NewAnalyzer(
	clients domain.ClientRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) *Analyzer {
	if logger == nil {
		logger = log.WithField("component", "analysis")
	}
	return &Analyzer{
		clients:  clients,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// OrderLines возвращает плоское представление: по строке на каждую позицию
// каждого заказа. Висячие ссылки на клиента или товар не считаются ошибкой —
// вместо имени подставляется заглушка.
func (a *Analyzer) OrderLines() ([]OrderLine, error) {
	orders, err := a.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	clientNames, err := a.clientNames()
	if err != nil {
		return nil, err
	}
	products, err := a.productIndex()
	if err != nil {
		return nil, err
	}

	lines := make([]OrderLine, 0, len(orders))
	for _, order := range orders {
		clientName, ok := clientNames[order.ClientID]
		if !ok {
			clientName = unknownLabel
		}
		for _, item := range order.Items {
			line := OrderLine{
				OrderID:     order.ID,
				ClientID:    order.ClientID,
				ClientName:  clientName,
				OrderDate:   order.OrderDate,
				ProductID:   item.ProductID,
				ProductName: unknownLabel,
				Category:    unknownLabel,
				Quantity:    item.Quantity,
				Price:       item.Price,
				Total:       item.Total,
			}
			if product, ok := products[item.ProductID]; ok {
				line.ProductName = product.Name
				line.Category = product.Category
			}
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// ClientSummaries возвращает сводку по каждому клиенту хранилища,
// включая клиентов без заказов.
func (a *Analyzer) ClientSummaries() ([]ClientSummary, error) {
	clients, err := a.clients.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	orders, err := a.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	ordersCount := make(map[int64]int64)
	spent := make(map[int64]float64)
	for _, order := range orders {
		ordersCount[order.ClientID]++
		spent[order.ClientID] += order.Total
	}

	summaries := make([]ClientSummary, 0, len(clients))
	for _, client := range clients {
		summaries = append(summaries, ClientSummary{
			ClientID:    client.ID,
			Name:        client.Name,
			Email:       client.Email,
			OrdersCount: ordersCount[client.ID],
			TotalSpent:  spent[client.ID],
		})
	}
	return summaries, nil
}

// ProductSummaries возвращает сводку продаж по каждому товару хранилища:
// сколько единиц продано и какую выручку товар принёс. Товары без продаж
// попадают в сводку с нулями.
func (a *Analyzer) ProductSummaries() ([]ProductSummary, error) {
	products, err := a.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	orders, err := a.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	sold := make(map[int64]int64)
	revenue := make(map[int64]float64)
	for _, order := range orders {
		for _, item := range order.Items {
			sold[item.ProductID] += item.Quantity
			revenue[item.ProductID] += item.Total
		}
	}

	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, ProductSummary{
			ProductID:    product.ID,
			Name:         product.Name,
			Category:     product.Category,
			Price:        product.Price,
			TotalSold:    sold[product.ID],
			TotalRevenue: revenue[product.ID],
		})
	}
	return summaries, nil
}

// SalesStatistics возвращает общие показатели магазина. На пустом
// хранилище все средние равны нулю.
func (a *Analyzer) SalesStatistics() (SalesStatistics, error) {
	orders, err := a.orders.GetAll()
	if err != nil {
		return SalesStatistics{}, fmt.Errorf("load orders: %w", err)
	}
	clients, err := a.clients.GetAll()
	if err != nil {
		return SalesStatistics{}, fmt.Errorf("load clients: %w", err)
	}

	stats := SalesStatistics{
		TotalOrders:  int64(len(orders)),
		TotalClients: int64(len(clients)),
	}
	for _, order := range orders {
		stats.TotalRevenue += order.Total
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	if stats.TotalClients > 0 {
		stats.AvgOrdersPerClient = float64(stats.TotalOrders) / float64(stats.TotalClients)
	}
	return stats, nil
}

// TopClients возвращает первые n клиентов по числу заказов, по убыванию.
// При равном числе заказов порядок определяется идентификатором.
func (a *Analyzer) TopClients(n int) ([]ClientSummary, error) {
	summaries, err := a.ClientSummaries()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].OrdersCount > summaries[j].OrdersCount
	})
	if n >= 0 && n < len(summaries) {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// DailyDynamics возвращает число заказов и выручку по дням за последние
// days суток, по возрастанию даты. Дни без заказов опускаются.
func (a *Analyzer) DailyDynamics(days int) ([]DailyPoint, error) {
	orders, err := a.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	byDay := make(map[time.Time]*DailyPoint)
	for _, order := range orders {
		if order.OrderDate.Before(cutoff) {
			continue
		}
		day := order.OrderDate.Truncate(24 * time.Hour)
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day}
			byDay[day] = point
		}
		point.Orders++
		point.Revenue += order.Total
	}

	points := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// CategoryDistribution возвращает число товаров и выручку по категориям,
// отсортированные по имени категории.
func (a *Analyzer) CategoryDistribution() ([]CategoryStat, error) {
	summaries, err := a.ProductSummaries()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategoryStat)
	for _, s := range summaries {
		stat, ok := byCategory[s.Category]
		if !ok {
			stat = &CategoryStat{Category: s.Category}
			byCategory[s.Category] = stat
		}
		stat.Products++
		stat.TotalRevenue += s.TotalRevenue
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

func (a *Analyzer) clientNames() (map[int64]string, error) {
	clients, err := a.clients.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	names := make(map[int64]string, len(clients))
	for _, client := range clients {
		names[client.ID] = client.Name
	}
	return names, nil
}

func (a *Analyzer) productIndex() (map[int64]domain.Product, error) {
	products, err := a.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	index := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		index[product.ID] = product
	}
	return index, nil
}
