package importer

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/ports"
)

// identitySet — сущности, известные прогону: созданные в нём и уже подгруженные из хранилища.
// Порядок first-seen сохраняется для детерминированной вставки.
type identitySet[T any] struct {
	byName map[string]*T
	seen   []*T
	loaded int
}

func newIdentitySet[T any]() identitySet[T] {
	return identitySet[T]{byName: make(map[string]*T)}
}

func (s *identitySet[T]) register(name string, v *T) {
	s.byName[name] = v
	s.seen = append(s.seen, v)
}

// Resolver — дедупликация покупателей и товаров по точному совпадению имени.
// Поиск двухуровневый: сначала набор текущего прогона, затем хранилище;
// при промахе создаётся новая сущность и регистрируется в наборе.
// Один Resolver живёт ровно один прогон и не потокобезопасен.
type Resolver struct {
	lookup    ports.EntityLookup
	customers identitySet[domain.Customer]
	products  identitySet[domain.Product]
}

// NewResolver — lookup может быть nil (пустое хранилище, например для сухого прогона).
func NewResolver(lookup ports.EntityLookup) *Resolver {
	return &Resolver{
		lookup:    lookup,
		customers: newIdentitySet[domain.Customer](),
		products:  newIdentitySet[domain.Product](),
	}
}

// Customer — найти или создать покупателя.
func (r *Resolver) Customer(ctx context.Context, name string) (*domain.Customer, error) {
	var find func(context.Context, string) (*domain.Customer, error)
	if r.lookup != nil {
		find = r.lookup.FindCustomerByName
	}
	c, err := resolve(ctx, &r.customers, name, find, func(n string) *domain.Customer {
		return &domain.Customer{Name: n}
	})
	if err != nil {
		return nil, fmt.Errorf("resolve customer %q: %w", name, err)
	}
	return c, nil
}

// Product — найти или создать товар.
func (r *Resolver) Product(ctx context.Context, name string) (*domain.Product, error) {
	var find func(context.Context, string) (*domain.Product, error)
	if r.lookup != nil {
		find = r.lookup.FindProductByName
	}
	p, err := resolve(ctx, &r.products, name, find, func(n string) *domain.Product {
		return &domain.Product{Name: n}
	})
	if err != nil {
		return nil, fmt.Errorf("resolve product %q: %w", name, err)
	}
	return p, nil
}

// Graph — собрать пакет для сохранения из заказов и всех затронутых сущностей.
func (r *Resolver) Graph(orders []*domain.Order) *domain.Graph {
	return &domain.Graph{
		Orders:    orders,
		Customers: r.customers.seen,
		Products:  r.products.seen,
	}
}

// Stats — сколько сущностей создано в прогоне и сколько подгружено из хранилища.
func (r *Resolver) Stats() (createdCustomers, loadedCustomers, createdProducts, loadedProducts int) {
	return len(r.customers.seen) - r.customers.loaded, r.customers.loaded,
		len(r.products.seen) - r.products.loaded, r.products.loaded
}

func resolve[T any](
	ctx context.Context,
	set *identitySet[T],
	name string,
	find func(context.Context, string) (*T, error),
	create func(string) *T,
) (*T, error) {
	if v, ok := set.byName[name]; ok {
		return v, nil
	}

	if find != nil {
		v, err := find(ctx, name)
		if err != nil {
			return nil, err
		}
		if v != nil {
			set.register(name, v)
			set.loaded++
			return v, nil
		}
	}

	v := create(name)
	set.register(name, v)
	return v, nil
}
