package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/backend/internal/domain/desktop"
)

var _ desktop.HubObserver = (*Metrics)(nil)

// value reads one sample from the registry. Labels must match exactly.
func value(t *testing.T, m *Metrics, name string, labels ...string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	want := map[string]string{}
	for i := 0; i+1 < len(labels); i += 2 {
		want[labels[i]] = labels[i+1]
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			if !labelsMatch(metric.GetLabel(), want) {
				continue
			}
			switch {
			case metric.Counter != nil:
				return metric.GetCounter().GetValue()
			case metric.Gauge != nil:
				return metric.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}

func TestMetricsAreIsolated(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.WindowOp("open")
	assert.Equal(t, 1.0, value(t, a, "webdesk_window_operations_total", "op", "open"))
	assert.Equal(t, 0.0, value(t, b, "webdesk_window_operations_total", "op", "open"))
}

func TestDesktopsActiveCountsCreation(t *testing.T) {
	m := NewMetrics()
	m.DesktopsActive(1)
	m.DesktopsActive(3)
	m.DesktopsActive(2)

	assert.Equal(t, 2.0, value(t, m, "webdesk_desktops_active"))
	assert.Equal(t, 3.0, value(t, m, "webdesk_desktops_created_total"))
	assert.Equal(t, int64(2), m.Snapshot().ActiveDesktops)
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond, 12)
	m.RecordHTTPRequest("GET", "/desktops/:id", "404", 30*time.Millisecond, 20)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.Equal(t, int64(1), s.ActiveConnections)
	assert.InDelta(t, 20.0, s.AvgLatencyMs, 0.001)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/desktops/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"desk_a", "desk_b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/desktops/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, value(t, m, "webdesk_http_requests_total", "method", "GET", "path", "/desktops/:id", "status", "200"))
	assert.Equal(t, 1.0, value(t, m, "webdesk_http_requests_total", "method", "GET", "path", "unmatched", "status", "404"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "webdesk_http_requests_total")
	assert.Contains(t, body, "webdesk_uptime_seconds")
	assert.Contains(t, body, "go_goroutines")
}
