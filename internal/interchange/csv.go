package interchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Kind задаёт вид сущности для табличного экспорта.
type Kind string

const (
	KindClients  Kind = "clients"
	KindProducts Kind = "products"
	// KindOrders экспортирует только шапки заказов: вложенные позиции не
	// раскладываются в фиксированный набор колонок.
	KindOrders Kind = "orders"
)

// ExportCSV выгружает один вид сущностей в CSV: строка заголовка, затем по
// строке на сущность, UTF-8.
func (c *Codec) ExportCSV(kind Kind, w io.Writer) error {
	writer := csv.NewWriter(w)

	switch kind {
	case KindClients:
		if err := c.writeClients(writer); err != nil {
			return err
		}
	case KindProducts:
		if err := c.writeProducts(writer); err != nil {
			return err
		}
	case KindOrders:
		if err := c.writeOrders(writer); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported entity kind: %q", kind)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func (c *Codec) writeClients(w *csv.Writer) error {
	clients, err := c.clients.GetAll()
	if err != nil {
		return fmt.Errorf("export clients csv: %w", err)
	}

	if err := w.Write([]string{"id", "name", "email", "phone", "address"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, client := range clients {
		row := []string{
			strconv.FormatInt(client.ID, 10),
			client.Name,
			client.Email,
			client.Phone,
			client.Address,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write client row: %w", err)
		}
	}
	return nil
}

func (c *Codec) writeProducts(w *csv.Writer) error {
	products, err := c.products.GetAll()
	if err != nil {
		return fmt.Errorf("export products csv: %w", err)
	}

	if err := w.Write([]string{"id", "name", "price", "category", "stock"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, product := range products {
		row := []string{
			strconv.FormatInt(product.ID, 10),
			product.Name,
			formatFloat(product.Price),
			product.Category,
			strconv.FormatInt(product.Stock, 10),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write product row: %w", err)
		}
	}
	return nil
}

func (c *Codec) writeOrders(w *csv.Writer) error {
	orders, err := c.orders.GetAll()
	if err != nil {
		return fmt.Errorf("export orders csv: %w", err)
	}

	if err := w.Write([]string{"id", "client_id", "order_date", "total"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, order := range orders {
		row := []string{
			strconv.FormatInt(order.ID, 10),
			strconv.FormatInt(order.ClientID, 10),
			order.OrderDate.Format(dateLayout),
			formatFloat(order.Total),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write order row: %w", err)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
