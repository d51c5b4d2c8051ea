package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/telemetry"
	"resume-check/internal/shared/util"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Logging(), Session())
	router.GET("/test", func(c *gin.Context) {
		c.Set(AnalysisIDKey, "analysis-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(SessionHeader, "tab1")
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "session_id", "analysis_id", "duration_ms", "status", "method", "path"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["session_id"] != util.ShortHash("tab1") {
		t.Fatalf("expected hashed session id, got %v", payload["session_id"])
	}
	if payload["analysis_id"] != "analysis-1" {
		t.Fatalf("unexpected analysis_id: %v", payload["analysis_id"])
	}
	if payload["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	if resp.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("expected request id echoed in header")
	}
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Code != "internal_error" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
	if !strings.Contains(buf.String(), `"msg":"request.panic"`) || !strings.Contains(buf.String(), `"panic":"boom"`) {
		t.Fatalf("expected panic log line, got %s", buf.String())
	}
}
