package importer

import (
	"context"
	"fmt"
	"iter"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// Mapper — отображает элементы заказов в связанные сущности, разрешая ссылки через Resolver.
type Mapper struct {
	resolver *Resolver
}

// NewMapper — конструктор Mapper.
func NewMapper(resolver *Resolver) *Mapper { return &Mapper{resolver: resolver} }

// MapAll — обходит заказы по порядку; первая же ошибка прерывает весь прогон.
// После обхода каждый заказ обязан ссылаться на покупателя.
func (m *Mapper) MapAll(ctx context.Context, orders iter.Seq2[*Element, error]) (*domain.Graph, error) {
	var result []*domain.Order

	idx := 0
	for el, err := range orders {
		if err != nil {
			return nil, err
		}
		idx++

		order, err := m.MapOrder(ctx, el)
		if err != nil {
			return nil, fmt.Errorf("order #%d: %w", idx, err)
		}
		if order.Customer == nil {
			return nil, fmt.Errorf("order #%d: %w", idx, &domain.MissingFieldError{Element: TagOrder, Field: TagUser})
		}
		result = append(result, order)
	}

	return m.resolver.Graph(result), nil
}

// MapOrder — разбор одного элемента order.
func (m *Mapper) MapOrder(ctx context.Context, el *Element) (*domain.Order, error) {
	if err := el.checkNoText(); err != nil {
		return nil, err
	}

	order := &domain.Order{}
	for i := range el.Children {
		child := &el.Children[i]

		switch child.Tag() {
		case TagNumber:
			order.Number = child.InnerText()
		case TagRegDate:
			date, err := ParseDate(TagRegDate, child.InnerText())
			if err != nil {
				return nil, err
			}
			order.Date = date
		case TagSum:
			cost, err := ParseDecimal(TagSum, child.InnerText())
			if err != nil {
				return nil, err
			}
			order.Cost = cost
		case TagProduct:
			item, err := m.lineItem(ctx, child)
			if err != nil {
				return nil, err
			}
			order.Items = append(order.Items, item)
		case TagUser:
			customer, err := m.customer(ctx, child)
			if err != nil {
				return nil, err
			}
			order.Customer = customer
		default:
			return nil, &domain.UnrecognizedTagError{Tag: child.Tag()}
		}
	}

	return order, nil
}

// lineItem — разбор product: товар ищется по первому name (пустой — как отсутствующий),
// цена перезаписывается
// последним значением (в том числе у товара из предыдущих заказов).
func (m *Mapper) lineItem(ctx context.Context, el *Element) (domain.LineItem, error) {
	if err := el.checkNoText(); err != nil {
		return domain.LineItem{}, err
	}

	nameEl, ok := el.Child(TagName)
	if !ok || nameEl.InnerText() == "" {
		return domain.LineItem{}, &domain.MissingFieldError{Element: TagProduct, Field: TagName}
	}
	product, err := m.resolver.Product(ctx, nameEl.InnerText())
	if err != nil {
		return domain.LineItem{}, err
	}

	item := domain.LineItem{Product: product}
	for i := range el.Children {
		child := &el.Children[i]

		switch child.Tag() {
		case TagPrice:
			price, err := ParseDecimal(TagPrice, child.InnerText())
			if err != nil {
				return domain.LineItem{}, err
			}
			product.Price = price
		case TagQuantity:
			count, err := ParseCount(TagQuantity, child.InnerText())
			if err != nil {
				return domain.LineItem{}, err
			}
			item.Count = &count
		case TagName:
			// уже учтено при поиске товара
		default:
			return domain.LineItem{}, &domain.UnrecognizedTagError{Tag: child.Tag()}
		}
	}

	return item, nil
}

// customer — разбор user: покупатель ищется по первому fio (пустой — как отсутствующий),
// email перезаписывается.
func (m *Mapper) customer(ctx context.Context, el *Element) (*domain.Customer, error) {
	if err := el.checkNoText(); err != nil {
		return nil, err
	}

	fioEl, ok := el.Child(TagFIO)
	if !ok || fioEl.InnerText() == "" {
		return nil, &domain.MissingFieldError{Element: TagUser, Field: TagFIO}
	}
	customer, err := m.resolver.Customer(ctx, fioEl.InnerText())
	if err != nil {
		return nil, err
	}

	for i := range el.Children {
		child := &el.Children[i]

		switch child.Tag() {
		case TagFIO:
			// имя — ключ дедупликации; повторный fio не переименовывает покупателя
		case TagEmail:
			email := child.InnerText()
			customer.Email = &email
		default:
			return nil, &domain.UnrecognizedTagError{Tag: child.Tag()}
		}
	}

	return customer, nil
}
