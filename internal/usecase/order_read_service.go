package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/ports"
)

// Проверка, что OrderReadService удовлетворяет порту чтения.
var _ ports.OrderReadService = (*OrderReadService)(nil)

// OrderReadService — чтение импортированных заказов с кэшем (cache-aside).
type OrderReadService struct {
	repo  ports.OrderReadRepository
	cache ports.OrderCache
	log   ports.Logger
}

// NewOrderReadService — DI-конструктор.
func NewOrderReadService(repo ports.OrderReadRepository, cache ports.OrderCache, log ports.Logger) *OrderReadService {
	return &OrderReadService{repo: repo, cache: cache, log: log}
}

// GetOrder — получить заказ по ID: сначала из кэша, при промахе — из БД с записью в кэш.
// Возвращает (*Order, nil) или (nil, nil), если записи нет.
func (s *OrderReadService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if order, found := s.cache.Get(ctx, id); found {
		return order, nil
	}

	start := time.Now()
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetOrder failed id=%d err=%v", id, err)
		return nil, err
	}

	if order != nil {
		if setErr := s.cache.Set(ctx, order); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed id=%d err=%v", id, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch order id=%d took=%s", id, time.Since(start))
	return order, nil
}

// OrdersByCustomer — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderReadService) OrdersByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*domain.Order, error) {
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}

// InvalidateCache — сбросить кэш после повторного импорта (ID назначаются заново).
func (s *OrderReadService) InvalidateCache(ctx context.Context) {
	s.cache.Purge(ctx)
	s.log.Infof(ctx, "order cache purged")
}
