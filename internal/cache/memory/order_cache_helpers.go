package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет просроченные элементы с хвоста до первого актуального.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent := back.Value.(*entry)
		if !now.After(ent.expiresAt) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

// cloneOrder — глубокая копия: покупатель, позиции и товары позиций копируются,
// чтобы изменения снаружи не попадали в кэш.
func cloneOrder(order *domain.Order) *domain.Order {
	if order == nil {
		return nil
	}
	cloned := *order
	if order.Customer != nil {
		customer := *order.Customer
		if customer.Email != nil {
			email := *customer.Email
			customer.Email = &email
		}
		cloned.Customer = &customer
	}
	if order.Items != nil {
		cloned.Items = make([]domain.LineItem, len(order.Items))
		for i, it := range order.Items {
			if it.Product != nil {
				product := *it.Product
				it.Product = &product
			}
			if it.Count != nil {
				count := *it.Count
				it.Count = &count
			}
			cloned.Items[i] = it
		}
	}
	return &cloned
}
