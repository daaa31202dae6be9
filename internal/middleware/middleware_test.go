package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRateLimitRouter(t *testing.T, rps int) *gin.Engine {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	r.Use(RateLimitByIP(ctx, rps, time.Minute, time.Minute))
	r.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitByIP_AllowsBurst(t *testing.T) {
	r := setupRateLimitRouter(t, 3)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestRateLimitByIP_RejectsOverLimit(t *testing.T) {
	r := setupRateLimitRouter(t, 1)
	before := testutil.ToFloat64(rateLimitRejects)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
	if got := testutil.ToFloat64(rateLimitRejects) - before; got != 1 {
		t.Errorf("rate limit rejects delta = %v, want 1", got)
	}
}

func TestRateLimitByIP_SeparateIPs(t *testing.T) {
	r := setupRateLimitRouter(t, 1)

	for _, addr := range []string{"10.0.0.3:1", "10.0.0.4:1"} {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", addr, w.Code, http.StatusOK)
		}
	}
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/meals/:meal_id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/meals/:meal_id", "200"))
	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest("GET", "/meals/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/meals/:meal_id", "200"))
	if after-before != 2 {
		t.Errorf("requests counted = %v, want 2", after-before)
	}
}
