package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestRequestLoggerWritesAccessLine(t *testing.T) {
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.GET("/api/documents", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"documents": []string{}})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/documents?session_id=s1", nil))

	out := buf.String()
	if !strings.Contains(out, "request completed") {
		t.Fatalf("log output = %q", out)
	}
	if !strings.Contains(out, "path=/api/documents") {
		t.Errorf("log should include the path: %q", out)
	}
	if !strings.Contains(out, "query=session_id=s1") {
		t.Errorf("log should include the query: %q", out)
	}
	if !strings.Contains(out, "request_id=") {
		t.Errorf("log should correlate with the request id: %q", out)
	}
}

func TestRequestLoggerErrorLevel(t *testing.T) {
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("5xx responses should log at error level: %q", buf.String())
	}
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	buf := captureLog(t)

	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if strings.Contains(buf.String(), "request completed") {
		t.Errorf("health probes should not be access-logged: %q", buf.String())
	}
}
