package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"fiction-catalog-api/pkg/logger"
	"fiction-catalog-api/pkg/metrics"
)

func TestTraceContextTagsCatalogResource(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), c.FullPath())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.End()
	})
	r.Use(TraceContext())
	r.GET("/api/stories/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/chapters/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/stats", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/stories/s-1", "/api/chapters/c-1", "/api/stats"} {
		w := serve(r, path, nil)
		if w.Header().Get("X-Trace-ID") == "" {
			t.Fatalf("%s: trace id header missing", path)
		}
	}

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("ended spans = %d, want 3", len(spans))
	}
	want := []attribute.KeyValue{
		attribute.String("story.id", "s-1"),
		attribute.String("chapter.id", "c-1"),
	}
	for i, kv := range want {
		if !hasAttribute(spans[i].Attributes(), kv) {
			t.Fatalf("span %q missing %s=%s: %v", spans[i].Name(), kv.Key, kv.Value.AsString(), spans[i].Attributes())
		}
	}
	if len(spans[2].Attributes()) != 0 {
		t.Fatalf("non-resource route should carry no id attributes: %v", spans[2].Attributes())
	}
}

func hasAttribute(attrs []attribute.KeyValue, want attribute.KeyValue) bool {
	for _, kv := range attrs {
		if kv.Key == want.Key && kv.Value.AsString() == want.Value.AsString() {
			return true
		}
	}
	return false
}

func TestTraceSkipsOperationalPaths(t *testing.T) {
	filter := skipPathFilter([]string{"/health", "/metrics"})
	cases := map[string]bool{
		"/health":          false,
		"/metrics":         false,
		"/api/stories":     true,
		"/api/stories/s-1": true,
	}
	for path, want := range cases {
		if got := filter(httptest.NewRequest(http.MethodGet, path, nil)); got != want {
			t.Fatalf("filter(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestMetricsCountsCatalogMisses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/stories/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/api/chapters/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	stories := metrics.CatalogLookupMisses.WithLabelValues(resourceStory)
	chapters := metrics.CatalogLookupMisses.WithLabelValues(resourceChapter)
	beforeStories, beforeChapters := testutil.ToFloat64(stories), testutil.ToFloat64(chapters)

	serve(r, "/api/stories/missing", nil)
	serve(r, "/api/chapters/c-1", nil)

	if got := testutil.ToFloat64(stories) - beforeStories; got != 1 {
		t.Fatalf("story misses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(chapters) - beforeChapters; got != 0 {
		t.Fatalf("found chapter counted as miss: %v", got)
	}
}

func TestRequestIDRejectsUnsafeHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var storyID any
	r := gin.New()
	r.Use(RequestID())
	r.GET("/api/stories/:id", func(c *gin.Context) {
		storyID = c.Request.Context().Value(logger.StoryIDKey)
	})

	for _, bad := range []string{strings.Repeat("a", maxRequestIDLen+1), "id with spaces", "<script>"} {
		w := serve(r, "/api/stories/s-9", map[string]string{RequestIDHeader: bad})
		got := w.Header().Get(RequestIDHeader)
		if got == "" || got == bad {
			t.Fatalf("unsafe request id %q was echoed as %q", bad, got)
		}
	}
	if storyID != "s-9" {
		t.Fatalf("story id in log context = %v, want s-9", storyID)
	}
}
