package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/xmlorders/internal/domain"
	"github.com/Gunvolt24/xmlorders/internal/importer"
	"github.com/Gunvolt24/xmlorders/internal/ports"
	"github.com/Gunvolt24/xmlorders/pkg/ctxmeta"
	"github.com/Gunvolt24/xmlorders/pkg/metrics"
	"github.com/Gunvolt24/xmlorders/pkg/telemetry"
	"github.com/Gunvolt24/xmlorders/pkg/validate"
)

// ErrSourceNotFound — входной файл отсутствует.
var ErrSourceNotFound = errors.New("import source file not found")

// ImportService — прогон импорта XML в хранилище (без знаний о CLI).
type ImportService struct {
	store     ports.OrderStore     // хранилище: пересоздание, поиск по имени, сохранение графа
	notifier  ports.ImportNotifier // оповещение о завершённом импорте
	validator ports.GraphValidator // связность графа перед коммитом
	log       ports.Logger
	tracer    trace.Tracer
	newRunID  func() uuid.UUID
}

// NewImportService — DI-конструктор. notifier может быть nil.
func NewImportService(store ports.OrderStore, notifier ports.ImportNotifier, log ports.Logger) *ImportService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ImportService{
		store:     store,
		notifier:  notifier,
		validator: validate.NewGraphValidator(),
		log:       log,
		tracer:    telemetry.Tracer(),
		newRunID:  uuid.New,
	}
}

// Import — полный прогон:
//  1. документ читается в память целиком;
//  2. хранилище пересоздаётся (первое обращение);
//  3. заказы разбираются по порядку, покупатели и товары дедуплицируются по имени;
//  4. весь граф сохраняется одним коммитом (второе обращение);
//  5. оповещение о завершении (ошибка оповещения не отменяет импорт).
//
// Любая ошибка формата прерывает прогон до сохранения: в хранилище не остаётся ни одной строки.
func (s *ImportService) Import(ctx context.Context, path string) (summary domain.ImportSummary, err error) {
	runID := s.newRunID()
	ctx = ctxmeta.WithRunID(ctx, runID.String())
	ctx, span := s.tracer.Start(ctx, "import.run", trace.WithAttributes(
		attribute.String("import.file", path),
		attribute.String("import.run_id", runID.String()),
	))
	start := time.Now()
	defer func() {
		metrics.ImportDuration.Observe(time.Since(start).Seconds())
		metrics.ImportRuns.WithLabelValues(runStatus(err)).Inc()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	s.log.Infof(ctx, "import started file=%s", path)

	doc, err := s.load(ctx, path)
	if err != nil {
		s.log.Warnf(ctx, "load failed file=%s err=%v", path, err)
		return domain.ImportSummary{}, err
	}

	if err := s.recreate(ctx); err != nil {
		s.log.Errorf(ctx, "store.Recreate failed err=%v", err)
		return domain.ImportSummary{}, fmt.Errorf("recreate store: %w", err)
	}

	graph, err := s.mapOrders(ctx, doc, s.store)
	if err != nil {
		s.log.Warnf(ctx, "mapping failed err=%v", err)
		return domain.ImportSummary{}, err
	}

	if err := s.validator.Validate(ctx, graph); err != nil {
		s.log.Errorf(ctx, "graph validation failed err=%v", err)
		return domain.ImportSummary{}, err
	}

	if err := s.save(ctx, graph); err != nil {
		s.log.Errorf(ctx, "store.SaveGraph failed err=%v", err)
		return domain.ImportSummary{}, fmt.Errorf("save orders: %w", err)
	}

	summary = domain.NewImportSummary(runID, path, graph)
	summary.Duration = time.Since(start)
	recordRows(summary)

	if nErr := s.notifier.ImportCompleted(ctx, summary); nErr != nil {
		s.log.Warnf(ctx, "import notification failed err=%v", nErr)
	}

	s.log.Infof(ctx, "import finished orders=%d customers=%d products=%d items=%d took=%s",
		summary.Orders, summary.Customers, summary.Products, summary.LineItems, summary.Duration)
	return summary, nil
}

// DryRun — разбор и дедупликация без обращения к хранилищу (проверка файла).
func (s *ImportService) DryRun(ctx context.Context, path string) (domain.ImportSummary, error) {
	runID := s.newRunID()
	ctx = ctxmeta.WithRunID(ctx, runID.String())
	start := time.Now()

	doc, err := s.load(ctx, path)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	graph, err := s.mapOrders(ctx, doc, nil)
	if err != nil {
		return domain.ImportSummary{}, err
	}
	if err := s.validator.Validate(ctx, graph); err != nil {
		return domain.ImportSummary{}, err
	}

	summary := domain.NewImportSummary(runID, path, graph)
	summary.Duration = time.Since(start)
	summary.DryRun = true
	s.log.Infof(ctx, "dry run ok orders=%d customers=%d products=%d", summary.Orders, summary.Customers, summary.Products)
	return summary, nil
}

func (s *ImportService) load(ctx context.Context, path string) (*importer.Document, error) {
	_, span := s.tracer.Start(ctx, "import.load")
	defer span.End()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	doc, err := importer.LoadDocument(file)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("xml.root", doc.Root()), attribute.Int("xml.orders", doc.Len()))
	return doc, nil
}

func (s *ImportService) recreate(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "import.recreate")
	defer span.End()
	return s.store.Recreate(ctx)
}

// mapOrders — один Resolver на прогон; lookup == nil означает пустое хранилище.
func (s *ImportService) mapOrders(ctx context.Context, doc *importer.Document, lookup ports.EntityLookup) (*domain.Graph, error) {
	ctx, span := s.tracer.Start(ctx, "import.map")
	defer span.End()

	resolver := importer.NewResolver(lookup)
	graph, err := importer.NewMapper(resolver).MapAll(ctx, doc.Orders())
	if err != nil {
		return nil, err
	}

	newC, loadedC, newP, loadedP := resolver.Stats()
	s.log.Infof(ctx, "resolved customers new=%d existing=%d products new=%d existing=%d", newC, loadedC, newP, loadedP)
	return graph, nil
}

func (s *ImportService) save(ctx context.Context, graph *domain.Graph) error {
	ctx, span := s.tracer.Start(ctx, "import.save", trace.WithAttributes(
		attribute.Int("import.orders", len(graph.Orders)),
	))
	defer span.End()
	return s.store.SaveGraph(ctx, graph)
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, importer.ErrMalformedXML), errors.Is(err, ErrSourceNotFound):
		return metrics.StatusInvalid
	default:
		return metrics.StatusFailed
	}
}

func recordRows(s domain.ImportSummary) {
	metrics.ImportedRows.WithLabelValues("orders").Add(float64(s.Orders))
	metrics.ImportedRows.WithLabelValues("customers").Add(float64(s.Customers))
	metrics.ImportedRows.WithLabelValues("products").Add(float64(s.Products))
	metrics.ImportedRows.WithLabelValues("line_items").Add(float64(s.LineItems))
}

// NopNotifier — оповещения выключены.
type NopNotifier struct{}

func (NopNotifier) ImportCompleted(context.Context, domain.ImportSummary) error { return nil }
