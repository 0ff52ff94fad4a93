package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})
	return reader, mp
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestHTTPMetrics_NoopMeter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPMetrics(noop.NewMeterProvider().Meter("test")))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics_RequestCounter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader, mp := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/api/v1/catalog/products/:key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("key")})
	})
	router.POST("/api/v1/checkout", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
	})

	for _, key := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/"+key, nil))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil))

	sum, ok := collectMetric(t, reader, "http_server_request_total").(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(attribute.Key("http.route"))
		status, _ := dp.Attributes.Value(attribute.Key("http.status_code"))
		counts[route.AsString()+" "+status.Emit()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"/api/v1/catalog/products/:key 200": 3,
		"/api/v1/checkout 422":              1,
	}, counts)
}

func TestHTTPMetrics_DurationAndSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader, mp := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	duration, ok := collectMetric(t, reader, "http_server_request_duration_seconds").(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(1), duration.DataPoints[0].Count)
	assert.Equal(t, HTTPDurationBuckets, duration.DataPoints[0].Bounds)

	size, ok := collectMetric(t, reader, "http_server_response_size_bytes").(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, size.DataPoints, 1)
	assert.Equal(t, int64(5), size.DataPoints[0].Sum)
}

func TestHTTPMetrics_ActiveRequestsSettle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reader, mp := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("http.server")))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	}

	active, ok := collectMetric(t, reader, "http_server_active_requests").(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, active.DataPoints, 1)
	assert.Zero(t, active.DataPoints[0].Value)
}

func TestRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var matched string
	router := gin.New()
	router.GET("/api/v1/cart/items/:product_id", func(c *gin.Context) {
		matched = routePattern(c)
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cart/items/4", nil))
	assert.Equal(t, "/api/v1/cart/items/:product_id", matched)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, "unknown", routePattern(c))
}
