package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRequestIDRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), AccessLogMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})
	return r
}

func TestGet_NopBeforeInit(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() should never return nil")
	}
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	r := setupRequestIDRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	header := w.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(header); err != nil {
		t.Fatalf("X-Request-ID = %q, want a UUID", header)
	}
	if w.Body.String() != header {
		t.Errorf("context request_id = %q, header = %q", w.Body.String(), header)
	}
}

func TestRequestIDMiddleware_ReusesValidHeader(t *testing.T) {
	r := setupRequestIDRouter()
	incoming := "11111111-1111-1111-1111-111111111111"

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != incoming {
		t.Errorf("X-Request-ID = %q, want %q", got, incoming)
	}
}

func TestRequestIDMiddleware_ReplacesGarbage(t *testing.T) {
	r := setupRequestIDRouter()

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "not a uuid\n")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got == "not a uuid\n" {
		t.Error("garbage X-Request-ID should be replaced")
	}
}
