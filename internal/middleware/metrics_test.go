// AngelaMos | 2026
// metrics_test.go

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/middleware"
)

func TestMetricsLabelByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/t/{tenantSlug}/slots/{slotID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, slug := range []string{"iron", "zen", "core"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/t/"+slug+"/slots/42", nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	expected := `
# HELP fitsyy_http_requests_total Total count of HTTP requests received.
# TYPE fitsyy_http_requests_total counter
fitsyy_http_requests_total{method="GET",route="/t/{tenantSlug}/slots/{slotID}",status="418"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"fitsyy_http_requests_total"))
}
