package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/ports"
)

// Проверка, что GraphValidator удовлетворяет интерфейсу GraphValidator.
var _ ports.GraphValidator = (*GraphValidator)(nil)

// ErrInvalidGraph — базовая (sentinel error) ошибка валидации графа.
var ErrInvalidGraph = errors.New("graph validation failed")

// GraphValidator — проверяет, что граф можно сохранить одним коммитом:
// ссылки ведут на сущности из самого графа, имена покупателей и товаров уникальны.
type GraphValidator struct{}

// NewGraphValidator — конструктор GraphValidator.
// Возвращает ErrInvalidGraph (с обёрнутой причиной) при любой проблеме.
func NewGraphValidator() *GraphValidator { return &GraphValidator{} }

// Validate — проверяет граф целиком.
func (v *GraphValidator) Validate(_ context.Context, graph *domain.Graph) error {
	if graph == nil {
		return fmt.Errorf("%w: граф не может быть nil", ErrInvalidGraph)
	}
	customers, err := v.validateCustomers(graph.Customers)
	if err != nil {
		return err
	}
	products, err := v.validateProducts(graph.Products)
	if err != nil {
		return err
	}
	return v.validateOrders(graph.Orders, customers, products)
}

// validateCustomers — имена покупателей уникальны.
func (v *GraphValidator) validateCustomers(list []*domain.Customer) (map[*domain.Customer]struct{}, error) {
	seen := make(map[*domain.Customer]struct{}, len(list))
	names := make(map[string]struct{}, len(list))
	for i, c := range list {
		if c == nil {
			return nil, fmt.Errorf("%w: customers[%d] = nil", ErrInvalidGraph, i)
		}
		if _, dup := names[c.Name]; dup {
			return nil, fmt.Errorf("%w: покупатель %q встречается дважды", ErrInvalidGraph, c.Name)
		}
		names[c.Name] = struct{}{}
		seen[c] = struct{}{}
	}
	return seen, nil
}

// validateProducts — имена товаров уникальны.
func (v *GraphValidator) validateProducts(list []*domain.Product) (map[*domain.Product]struct{}, error) {
	seen := make(map[*domain.Product]struct{}, len(list))
	names := make(map[string]struct{}, len(list))
	for i, p := range list {
		if p == nil {
			return nil, fmt.Errorf("%w: products[%d] = nil", ErrInvalidGraph, i)
		}
		if _, dup := names[p.Name]; dup {
			return nil, fmt.Errorf("%w: товар %q встречается дважды", ErrInvalidGraph, p.Name)
		}
		names[p.Name] = struct{}{}
		seen[p] = struct{}{}
	}
	return seen, nil
}

// validateOrders — у каждого заказа есть покупатель, у каждой позиции есть товар,
// и обе ссылки указывают на сущности из графа.
func (v *GraphValidator) validateOrders(
	orders []*domain.Order,
	customers map[*domain.Customer]struct{},
	products map[*domain.Product]struct{},
) error {
	for i, o := range orders {
		if o == nil {
			return fmt.Errorf("%w: orders[%d] = nil", ErrInvalidGraph, i)
		}
		if o.Customer == nil {
			return fmt.Errorf("%w: orders[%d]: %w", ErrInvalidGraph, i, &domain.MissingFieldError{Element: "order", Field: "user"})
		}
		if _, ok := customers[o.Customer]; !ok {
			return fmt.Errorf("%w: orders[%d].customer %q вне графа", ErrInvalidGraph, i, o.Customer.Name)
		}

		for j := range o.Items {
			item := &o.Items[j]
			if item.Product == nil {
				return fmt.Errorf("%w: orders[%d].items[%d] без товара", ErrInvalidGraph, i, j)
			}
			if _, ok := products[item.Product]; !ok {
				return fmt.Errorf("%w: orders[%d].items[%d].product %q вне графа", ErrInvalidGraph, i, j, item.Product.Name)
			}
		}
	}
	return nil
}
