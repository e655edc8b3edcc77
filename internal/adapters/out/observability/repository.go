// Package observability decorates the order repository with tracing, logging
// and metrics.
package observability

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "ordering/internal/adapters/out/observability"

// Repository wraps a ports.OrderRepository. Not-found lookups are expected
// and are logged at debug level without marking the span as failed.
type Repository struct {
	inner   ports.OrderRepository
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics repositoryMetrics
}

var _ ports.OrderRepository = (*Repository)(nil)

type Option func(*Repository)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Repository) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Repository) {
		r.metrics = newRepositoryMetrics(m)
	}
}

func NewRepository(inner ports.OrderRepository, opts ...Option) *Repository {
	r := &Repository{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(instrumentationName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.tracer == nil {
		r.tracer = nooptrace.NewTracerProvider().Tracer(instrumentationName)
	}
	return r
}

func (r *Repository) Add(ctx context.Context, aggregate *order.Order) error {
	ctx, span := r.start(ctx, "OrderRepository.Add", orderAttrs(aggregate)...)
	defer span.End()
	start := time.Now()

	err := r.inner.Add(ctx, aggregate)
	r.metrics.recordCall(ctx, "add", start, err)
	if err != nil {
		return r.fail(ctx, span, err, "failed to add order", slog.String("order.number", aggregate.Number()))
	}
	r.metrics.recordSaved(ctx, "add", aggregate.Status())
	r.logDebug(ctx, "order added", slog.String("order.number", aggregate.Number()))
	return nil
}

func (r *Repository) Update(ctx context.Context, aggregate *order.Order) error {
	ctx, span := r.start(ctx, "OrderRepository.Update", orderAttrs(aggregate)...)
	defer span.End()
	start := time.Now()

	err := r.inner.Update(ctx, aggregate)
	r.metrics.recordCall(ctx, "update", start, err)
	if err != nil {
		return r.fail(ctx, span, err, "failed to update order", slog.String("order.number", aggregate.Number()))
	}
	r.metrics.recordSaved(ctx, "update", aggregate.Status())
	r.logDebug(ctx, "order updated",
		slog.String("order.number", aggregate.Number()),
		slog.String("order.status", aggregate.Status().String()))
	return nil
}

func (r *Repository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.Get", attribute.String("order.id", id.String()))
	defer span.End()
	start := time.Now()

	o, err := r.inner.Get(ctx, id)
	r.metrics.recordCall(ctx, "get", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return o, nil
}

func (r *Repository) GetByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.GetByOrderNumber", attribute.String("order.number", number))
	defer span.End()
	start := time.Now()

	o, err := r.inner.GetByOrderNumber(ctx, number)
	r.metrics.recordCall(ctx, "get_by_number", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to load order", slog.String("order.number", number))
	}
	return o, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, page ports.Page) ([]*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.ListByCustomer", attribute.Int64("customer.id", customerID))
	defer span.End()
	start := time.Now()

	orders, err := r.inner.ListByCustomer(ctx, customerID, page)
	r.metrics.recordCall(ctx, "list_by_customer", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to list orders", slog.Int64("customer.id", customerID))
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *Repository) ListByStatus(ctx context.Context, status order.Status, page ports.Page) ([]*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.ListByStatus", attribute.String("order.status", status.String()))
	defer span.End()
	start := time.Now()

	orders, err := r.inner.ListByStatus(ctx, status, page)
	r.metrics.recordCall(ctx, "list_by_status", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to list orders", slog.String("order.status", status.String()))
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *Repository) ListByCustomerAndStatus(
	ctx context.Context,
	customerID int64,
	status order.Status,
	page ports.Page,
) ([]*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.ListByCustomerAndStatus",
		attribute.Int64("customer.id", customerID),
		attribute.String("order.status", status.String()))
	defer span.End()
	start := time.Now()

	orders, err := r.inner.ListByCustomerAndStatus(ctx, customerID, status, page)
	r.metrics.recordCall(ctx, "list_by_customer_and_status", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to list orders",
			slog.Int64("customer.id", customerID),
			slog.String("order.status", status.String()))
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *Repository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	ctx, span := r.start(ctx, "OrderRepository.ListPendingOlderThan",
		attribute.String("cutoff", cutoff.UTC().Format(time.RFC3339)))
	defer span.End()
	start := time.Now()

	orders, err := r.inner.ListPendingOlderThan(ctx, cutoff)
	r.metrics.recordCall(ctx, "list_pending_older_than", start, err)
	if err != nil {
		return nil, r.fail(ctx, span, err, "failed to list stale orders")
	}
	span.SetAttributes(attribute.Int("result.count", len(orders)))
	return orders, nil
}

func (r *Repository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	ctx, span := r.start(ctx, "OrderRepository.CountByStatus", attribute.String("order.status", status.String()))
	defer span.End()
	start := time.Now()

	n, err := r.inner.CountByStatus(ctx, status)
	r.metrics.recordCall(ctx, "count_by_status", start, err)
	if err != nil {
		return 0, r.fail(ctx, span, err, "failed to count orders", slog.String("order.status", status.String()))
	}
	return n, nil
}

func (r *Repository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	ctx, span := r.start(ctx, "OrderRepository.CountByCustomer", attribute.Int64("customer.id", customerID))
	defer span.End()
	start := time.Now()

	n, err := r.inner.CountByCustomer(ctx, customerID)
	r.metrics.recordCall(ctx, "count_by_customer", start, err)
	if err != nil {
		return 0, r.fail(ctx, span, err, "failed to count orders", slog.Int64("customer.id", customerID))
	}
	return n, nil
}

func (r *Repository) CountByCustomerAndStatus(ctx context.Context, customerID int64, status order.Status) (int64, error) {
	ctx, span := r.start(ctx, "OrderRepository.CountByCustomerAndStatus",
		attribute.Int64("customer.id", customerID),
		attribute.String("order.status", status.String()))
	defer span.End()
	start := time.Now()

	n, err := r.inner.CountByCustomerAndStatus(ctx, customerID, status)
	r.metrics.recordCall(ctx, "count_by_customer_and_status", start, err)
	if err != nil {
		return 0, r.fail(ctx, span, err, "failed to count orders", slog.Int64("customer.id", customerID))
	}
	return n, nil
}

func (r *Repository) ExistsByOrderNumber(ctx context.Context, number string) (bool, error) {
	ctx, span := r.start(ctx, "OrderRepository.ExistsByOrderNumber", attribute.String("order.number", number))
	defer span.End()
	start := time.Now()

	ok, err := r.inner.ExistsByOrderNumber(ctx, number)
	r.metrics.recordCall(ctx, "exists_by_number", start, err)
	if err != nil {
		return false, r.fail(ctx, span, err, "failed to check order number", slog.String("order.number", number))
	}
	return ok, nil
}

func (r *Repository) Delete(ctx context.Context, id kernel.UUID) error {
	ctx, span := r.start(ctx, "OrderRepository.Delete", attribute.String("order.id", id.String()))
	defer span.End()
	start := time.Now()

	err := r.inner.Delete(ctx, id)
	r.metrics.recordCall(ctx, "delete", start, err)
	if err != nil {
		return r.fail(ctx, span, err, "failed to delete order", slog.String("order.id", id.String()))
	}
	return nil
}

func (r *Repository) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(attrs...))
}

func (r *Repository) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	kind := errs.KindOf(err)
	span.SetAttributes(attribute.String("error.kind", kind.String()))
	if kind == errs.KindNotFound {
		r.logDebug(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
		return err
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if r.logger != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, msg, append(attrs, slog.String("error", err.Error()))...)
	}
	return err
}

func (r *Repository) logDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func orderAttrs(o *order.Order) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("order.id", o.ID().String()),
		attribute.String("order.number", o.Number()),
		attribute.String("order.status", o.Status().String()),
	}
}

type repositoryMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	saved    metric.Int64Counter
}

func newRepositoryMetrics(m metric.Meter) repositoryMetrics {
	if m == nil {
		return repositoryMetrics{}
	}
	calls, _ := m.Int64Counter("ordering.repository.calls",
		metric.WithDescription("Order repository calls by operation and outcome"))
	duration, _ := m.Float64Histogram("ordering.repository.duration",
		metric.WithDescription("Order repository call latency"),
		metric.WithUnit("ms"))
	saved, _ := m.Int64Counter("ordering.repository.orders_saved",
		metric.WithDescription("Orders written, by operation and resulting status"))
	return repositoryMetrics{calls: calls, duration: duration, saved: saved}
}

func (m repositoryMetrics) recordCall(ctx context.Context, op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err).String()
	}
	attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("outcome", outcome))
	if m.calls != nil {
		m.calls.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
	}
}

func (m repositoryMetrics) recordSaved(ctx context.Context, op string, status order.Status) {
	if m.saved != nil {
		m.saved.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("order.status", status.String()),
		))
	}
}
