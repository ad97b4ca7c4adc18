package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authgate/server/middleware"
)

// installRecorder swaps in a recording tracer provider for the test and
// restores the previous global provider afterwards.
func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestTracing_SpanPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := installRecorder(t)

	var inHandler trace.SpanContext
	e := gin.New()
	e.Use(middleware.Tracing())
	e.GET("/ping", func(c *gin.Context) {
		inHandler = trace.SpanFromContext(c.Request.Context()).SpanContext()
		c.Status(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if !inHandler.IsValid() {
		t.Error("handler should see a live span in the request context")
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "GET /ping" {
		t.Errorf("span name = %q, want %q", span.Name(), "GET /ping")
	}

	attrs := map[string]interface{}{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if got := attrs["http.status_code"]; got != int64(http.StatusNoContent) {
		t.Errorf("http.status_code = %v, want %d", got, http.StatusNoContent)
	}
	if got := attrs["http.route"]; got != "/ping" {
		t.Errorf("http.route = %v, want /ping", got)
	}
}

func TestTracing_MarksServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := installRecorder(t)

	e := gin.New()
	e.Use(middleware.Tracing())
	e.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status().Code)
	}
}
