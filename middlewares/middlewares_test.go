package middlewares

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newEngine(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return r
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("expected generated request id echoed, header=%q body=%q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected client request id kept, got %q", got)
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	r := newEngine(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["level"] != "warning" {
		t.Errorf("expected warning level, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusNotFound) || entry["path"] != "/missing" {
		t.Errorf("unexpected fields %v", entry)
	}
	if entry["request_id"] == "" {
		t.Errorf("request id not logged")
	}
}

func TestCORS_AllowAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://kasir.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
}
