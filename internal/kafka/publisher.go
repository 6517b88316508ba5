package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/ports"
	"github.com/Gunvolt24/xmlorders/pkg/ctxmeta"
	"github.com/Gunvolt24/xmlorders/pkg/metrics"
)

// Проверка, что Publisher удовлетворяет порту оповещений.
var _ ports.ImportNotifier = (*Publisher)(nil)

// EventImportCompleted — тип события в заголовке event-type.
const EventImportCompleted = "orders.import.completed"

// writer — минимальный контракт над kafka.Writer, чтобы подменять его моками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ImportCompletedEvent — полезная нагрузка события.
type ImportCompletedEvent struct {
	RunID      string    `json:"run_id"`
	File       string    `json:"file"`
	Orders     int       `json:"orders"`
	Customers  int       `json:"customers"`
	Products   int       `json:"products"`
	LineItems  int       `json:"line_items"`
	DurationMS int64     `json:"duration_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// Publisher — отправка событий об импорте в Kafka.
type Publisher struct {
	writer       writer
	log          ports.Logger
	topic        string
	maxAttempts  int
	retryInitial time.Duration
	retryMax     time.Duration
	jitterRand   *rand.Rand
	now          func() time.Time
	closeOnce    sync.Once
}

// NewPublisher — конструктор.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 200 * time.Millisecond
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 2 * time.Second
	}

	return &Publisher{
		writer:       cfg.writer(),
		log:          log,
		topic:        cfg.Topic,
		maxAttempts:  attempts,
		retryInitial: rInit,
		retryMax:     rMax,
		jitterRand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:          time.Now,
	}
}

// ImportCompleted — событие с ключом run_id. Временные ошибки брокера
// повторяются с экспоненциальной задержкой, но не дольше maxAttempts попыток.
func (p *Publisher) ImportCompleted(ctx context.Context, summary domain.ImportSummary) error {
	msg, err := p.message(ctx, summary)
	if err != nil {
		metrics.ImportNotifications.WithLabelValues("failed").Inc()
		return err
	}

	retry := p.retryInitial
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		lastErr = p.writer.WriteMessages(ctx, msg)
		if lastErr == nil {
			metrics.ImportNotifications.WithLabelValues("sent").Inc()
			p.log.Infof(ctx, "import event sent topic=%s run_id=%s", p.topic, summary.RunID)
			return nil
		}
		if ctx.Err() != nil || attempt == p.maxAttempts {
			break
		}

		sleep := p.withJitterEqual(retry)
		p.log.Warnf(ctx, "write failed attempt=%d: %v (will retry in %s)", attempt, lastErr, sleep)
		if !p.sleepWithBackoff(ctx, sleep) {
			break
		}
		retry = p.nextBackoff(retry)
	}

	metrics.ImportNotifications.WithLabelValues("failed").Inc()
	return fmt.Errorf("publish import event: %w", lastErr)
}

// Close — закрывает writer. Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func (p *Publisher) message(ctx context.Context, s domain.ImportSummary) (kafka.Message, error) {
	payload, err := json.Marshal(ImportCompletedEvent{
		RunID:      s.RunID.String(),
		File:       s.File,
		Orders:     s.Orders,
		Customers:  s.Customers,
		Products:   s.Products,
		LineItems:  s.LineItems,
		DurationMS: s.Duration.Milliseconds(),
		FinishedAt: p.now().UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal import event: %w", err)
	}

	headers := []kafka.Header{{Key: "event-type", Value: []byte(EventImportCompleted)}}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		headers = append(headers, kafka.Header{Key: "request-id", Value: []byte(rid)})
	}

	return kafka.Message{
		Key:     []byte(s.RunID.String()),
		Value:   payload,
		Headers: headers,
	}, nil
}
