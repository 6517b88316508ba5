// Пакет domain — сущности реляционной схемы заказов, в которую отображается XML.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLineItemCount — количество в позиции, если тэг quantity не встречался.
const DefaultLineItemCount = 1

// Customer — покупатель. Name — естественный ключ дедупликации.
type Customer struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

// Product — товар. Name — естественный ключ дедупликации, цена — последняя увиденная.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// LineItem — позиция заказа (товар + количество).
// Count == nil означает «не задано»: хранилище подставит DefaultLineItemCount.
type LineItem struct {
	ID      int64    `json:"id"`
	OrderID int64    `json:"order_id"`
	Product *Product `json:"product"`
	Count   *int     `json:"count"`
}

// Quantity — итоговое количество с учётом значения по умолчанию.
func (li *LineItem) Quantity() int {
	if li.Count == nil {
		return DefaultLineItemCount
	}
	return *li.Count
}

// Order — заказ.
type Order struct {
	ID       int64           `json:"id"`
	Number   string          `json:"number"`
	Date     time.Time       `json:"reg_date"`
	Cost     decimal.Decimal `json:"sum"`
	Customer *Customer       `json:"customer"`
	Items    []LineItem      `json:"items"`
}

// Graph — всё, что накоплено за прогон и сохраняется одним коммитом.
// Customers/Products содержат как новые сущности (ID == 0), так и найденные в хранилище.
type Graph struct {
	Orders    []*Order
	Customers []*Customer
	Products  []*Product
}

// LineItemsCount — общее число позиций во всех заказах.
func (g *Graph) LineItemsCount() int {
	n := 0
	for _, o := range g.Orders {
		n += len(o.Items)
	}
	return n
}
