// Package interchange реализует обмен содержимым хранилища: полный
// экспорт/импорт в JSON-документ и плоский табличный экспорт в CSV.
package interchange

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcore/internal/domain"
	"github.com/vladislavdragonenkov/shopcore/internal/metrics"
)

// Даты сериализуются в ISO-8601 с наносекундной точностью, чтобы
// экспорт-импорт воспроизводил их в точности.
const dateLayout = time.RFC3339Nano

// Document — переносимое представление всего хранилища.
type Document struct {
	Clients  []ClientRecord  `json:"clients"`
	Products []ProductRecord `json:"products"`
	Orders   []OrderRecord   `json:"orders"`
}

// ClientRecord — сериализованный клиент.
type ClientRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ProductRecord — сериализованный товар.
type ProductRecord struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
}

// OrderItemRecord — сериализованная позиция заказа.
type OrderItemRecord struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// OrderRecord — сериализованный заказ с вложенными позициями.
type OrderRecord struct {
	ID        int64             `json:"id"`
	ClientID  int64             `json:"client_id"`
	OrderDate string            `json:"order_date"`
	Items     []OrderItemRecord `json:"items"`
	Total     float64           `json:"total"`
}

// Codec переносит содержимое хранилища в Document и обратно.
type Codec struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   domain.OrderRepository
	logger   *log.Entry
	metrics  *metrics.StoreMetrics
}

// NewCodec создаёт кодек поверх репозиториев хранилища.
func NewCodec(
	clients domain.ClientRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	logger *log.Entry,
) *Codec {
	if logger == nil {
		logger = log.WithField("component", "interchange")
	}
	return &Codec{
		clients:  clients,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// WithMetrics включает учёт экспортов и импортов в метриках.
func (c *Codec) WithMetrics(m *metrics.StoreMetrics) *Codec {
	c.metrics = m
	return c
}

// ExportAll снимает полный слепок хранилища.
func (c *Codec) ExportAll() (*Document, error) {
	clients, err := c.clients.GetAll()
	if err != nil {
		return nil, fmt.Errorf("export clients: %w", err)
	}
	products, err := c.products.GetAll()
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	orders, err := c.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("export orders: %w", err)
	}

	doc := &Document{
		Clients:  make([]ClientRecord, 0, len(clients)),
		Products: make([]ProductRecord, 0, len(products)),
		Orders:   make([]OrderRecord, 0, len(orders)),
	}
	for _, client := range clients {
		doc.Clients = append(doc.Clients, clientToRecord(client))
	}
	for _, product := range products {
		doc.Products = append(doc.Products, productToRecord(product))
	}
	for _, order := range orders {
		doc.Orders = append(doc.Orders, orderToRecord(order))
	}

	if c.metrics != nil {
		c.metrics.RecordExport()
	}
	return doc, nil
}

// ImportAll сливает документ в хранилище: существующая сущность обновляется,
// отсутствующая вставляется с сохранением идентификатора. Импорт не
// транзакционен между сущностями — сбой на середине оставляет уже
// импортированное. Клиенты идут первыми, затем товары, затем заказы: к
// моменту импорта заказов их ссылки с большей вероятностью уже на месте
// (порядок не гарантирует целостность, только повышает шансы).
func (c *Codec) ImportAll(doc *Document) error {
	for _, rec := range doc.Clients {
		if err := c.importClient(rec); err != nil {
			return err
		}
	}
	for _, rec := range doc.Products {
		if err := c.importProduct(rec); err != nil {
			return err
		}
	}
	for _, rec := range doc.Orders {
		if err := c.importOrder(rec); err != nil {
			return err
		}
	}

	if c.metrics != nil {
		c.metrics.RecordImported("client", len(doc.Clients))
		c.metrics.RecordImported("product", len(doc.Products))
		c.metrics.RecordImported("order", len(doc.Orders))
	}

	c.logger.WithFields(log.Fields{
		"clients":  len(doc.Clients),
		"products": len(doc.Products),
		"orders":   len(doc.Orders),
	}).Info("import finished")
	return nil
}

// ExportFile сериализует слепок хранилища в JSON-файл.
func (c *Codec) ExportFile(path string) error {
	doc, err := c.ExportAll()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	c.logger.WithField("path", path).Info("export finished")
	return nil
}

// ImportFile читает JSON-файл и сливает его содержимое в хранилище.
func (c *Codec) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal import document: %w", err)
	}
	return c.ImportAll(&doc)
}

func (c *Codec) importClient(rec ClientRecord) error {
	client := clientFromRecord(rec)

	_, err := c.clients.Get(client.ID)
	switch {
	case err == nil:
		if _, err := c.clients.Update(client); err != nil {
			return fmt.Errorf("import client %d: %w", client.ID, err)
		}
	case domain.IsNotFound(err):
		if err := c.clients.Restore(client); err != nil {
			return fmt.Errorf("import client %d: %w", client.ID, err)
		}
	default:
		return fmt.Errorf("import client %d: %w", client.ID, err)
	}
	return nil
}

func (c *Codec) importProduct(rec ProductRecord) error {
	product := productFromRecord(rec)

	_, err := c.products.Get(product.ID)
	switch {
	case err == nil:
		if _, err := c.products.Update(product); err != nil {
			return fmt.Errorf("import product %d: %w", product.ID, err)
		}
	case domain.IsNotFound(err):
		if err := c.products.Restore(product); err != nil {
			return fmt.Errorf("import product %d: %w", product.ID, err)
		}
	default:
		return fmt.Errorf("import product %d: %w", product.ID, err)
	}
	return nil
}

func (c *Codec) importOrder(rec OrderRecord) error {
	order, err := orderFromRecord(rec)
	if err != nil {
		return fmt.Errorf("import order %d: %w", rec.ID, err)
	}

	_, err = c.orders.Get(order.ID)
	switch {
	case err == nil:
		if _, err := c.orders.Update(order); err != nil {
			return fmt.Errorf("import order %d: %w", order.ID, err)
		}
	case domain.IsNotFound(err):
		if err := c.orders.Restore(order); err != nil {
			return fmt.Errorf("import order %d: %w", order.ID, err)
		}
	default:
		return fmt.Errorf("import order %d: %w", order.ID, err)
	}
	return nil
}

func clientToRecord(client domain.Client) ClientRecord {
	return ClientRecord{
		ID:      client.ID,
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
	}
}

func clientFromRecord(rec ClientRecord) domain.Client {
	return domain.Client{
		ID:      rec.ID,
		Name:    rec.Name,
		Email:   rec.Email,
		Phone:   rec.Phone,
		Address: rec.Address,
	}
}

func productToRecord(product domain.Product) ProductRecord {
	return ProductRecord{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Stock:    product.Stock,
	}
}

func productFromRecord(rec ProductRecord) domain.Product {
	return domain.Product{
		ID:       rec.ID,
		Name:     rec.Name,
		Price:    rec.Price,
		Category: rec.Category,
		Stock:    rec.Stock,
	}
}

func orderToRecord(order domain.Order) OrderRecord {
	items := make([]OrderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemRecord{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}
	return OrderRecord{
		ID:        order.ID,
		ClientID:  order.ClientID,
		OrderDate: order.OrderDate.Format(dateLayout),
		Items:     items,
		Total:     order.Total,
	}
}

func orderFromRecord(rec OrderRecord) (domain.Order, error) {
	orderDate, err := time.Parse(dateLayout, rec.OrderDate)
	if err != nil {
		return domain.Order{}, fmt.Errorf("parse order date %q: %w", rec.OrderDate, err)
	}
	items := make([]domain.OrderItem, 0, len(rec.Items))
	for _, item := range rec.Items {
		// Сумма позиции — производное поле, восстанавливаем через конструктор.
		items = append(items, domain.NewOrderItem(item.ProductID, item.Quantity, item.Price))
	}
	order := domain.NewOrder(rec.ClientID, items, orderDate)
	order.ID = rec.ID
	return order, nil
}
