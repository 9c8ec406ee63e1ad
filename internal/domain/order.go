package domain

import "time"

// OrderItem представляет одну позицию заказа.
// Price — цена за единицу на момент оформления, она не перечитывается из
// каталога при отображении. Total пересчитывается при каждом изменении
// количества или цены.
type OrderItem struct {
	ProductID int64
	Quantity  int64
	Price     float64
	Total     float64
}

// NewOrderItem создаёт позицию заказа и вычисляет её сумму.
func NewOrderItem(productID, quantity int64, price float64) OrderItem {
	item := OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}
	item.recalc()
	return item
}

// SetQuantity меняет количество и пересчитывает сумму позиции.
func (i *OrderItem) SetQuantity(quantity int64) {
	i.Quantity = quantity
	i.recalc()
}

// SetPrice меняет цену за единицу и пересчитывает сумму позиции.
func (i *OrderItem) SetPrice(price float64) {
	i.Price = price
	i.recalc()
}

func (i *OrderItem) recalc() {
	i.Total = float64(i.Quantity) * i.Price
}

// Order агрегирует заказ клиента и его позиции.
// Инвариант: Total == сумма Items[i].Total после любой мутации. Он
// поддерживается инкрементально в AddItem/RemoveItem, поэтому оба пути
// должны оставаться согласованными с конструктором.
type Order struct {
	ID        int64
	ClientID  int64
	Items     []OrderItem
	OrderDate time.Time
	Total     float64
}

// NewOrder создаёт заказ. Нулевая дата заменяется текущим временем.
// Порядок позиций — порядок вставки, семантической нагрузки он не несёт.
func NewOrder(clientID int64, items []OrderItem, orderDate time.Time) Order {
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	var total float64
	for _, item := range items {
		total += item.Total
	}
	return Order{
		ClientID:  clientID,
		Items:     items,
		OrderDate: orderDate,
		Total:     total,
	}
}

// AddItem добавляет позицию в конец заказа и корректирует сумму.
func (o *Order) AddItem(item OrderItem) {
	o.Items = append(o.Items, item)
	o.Total += item.Total
}

// RemoveItem удаляет первую позицию с указанным товаром.
// Возвращает false, если такой позиции в заказе нет.
func (o *Order) RemoveItem(productID int64) bool {
	for i, item := range o.Items {
		if item.ProductID == productID {
			o.Total -= item.Total
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ItemsTotal возвращает сумму позиций, посчитанную с нуля.
// Используется в проверках согласованности с инкрементальным Total.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Total
	}
	return total
}
