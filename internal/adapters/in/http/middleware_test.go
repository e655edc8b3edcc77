package http_test

import (
	"net/http"
	"testing"

	orderhttp "ordering/internal/adapters/in/http"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing_RecordsServerSpanPerRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	e, m := newTestServer()
	e.Use(orderhttp.Tracing(provider.Tracer("test")))
	id := kernel.NewUUID()

	m.getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{ID: id}, nil).Once()

	rec := do(e, http.MethodGet, "/api/v1/orders/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/v1/orders/:id", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestTracing_MarksServerErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	e, m := newTestServer()
	e.Use(orderhttp.Tracing(provider.Tracer("test")))

	m.statistics.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderStatistics{}, assert.AnError).Once()

	rec := do(e, http.MethodGet, "/api/v1/admin/orders/statistics", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
