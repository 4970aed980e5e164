package handler

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-catalog/internal/middleware"
)

func TestRequestLogger_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(middleware.ContextKeyRequestID, "req-42")

	requestLogger(c).Info().Msg("author deleted")
	requestLogger(c).Error().Msg("failed to delete author")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.Contains(line, `"request_id":"req-42"`) {
			t.Errorf("expected request id in %s", line)
		}
	}
	if !strings.Contains(lines[1], `"level":"error"`) {
		t.Errorf("expected error level, got %s", lines[1])
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		param  string
		want   uint
		wantOK bool
	}{
		{param: "7", want: 7, wantOK: true},
		{param: "", wantOK: false},
		{param: "0", wantOK: false},
		{param: "-1", wantOK: false},
		{param: "abc", wantOK: false},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if tt.param != "" {
			c.Params = gin.Params{{Key: "id", Value: tt.param}}
		}

		got, ok := parseID(c)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseID(%q) = %d, %v; want %d, %v", tt.param, got, ok, tt.want, tt.wantOK)
		}
	}
}
