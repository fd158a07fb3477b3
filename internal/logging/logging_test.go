package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-food-backend/config"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return r
}

func TestRequestID(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	router := setupRouter()

	testCases := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "Generated when missing", incoming: "", keep: false},
		{name: "Replaced when malformed", incoming: "not-a-uuid", keep: false},
		{name: "Reused when valid", incoming: "6f1c1f0e-3d6b-4c1e-9a7d-1b2c3d4e5f60", keep: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/ok", nil)
			if tc.incoming != "" {
				req.Header.Set(RequestIDHeader, tc.incoming)
			}
			router.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, got, w.Body.String())
			if tc.keep {
				assert.Equal(t, tc.incoming, got)
			}
		})
	}
}

func TestRequestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&config.LoggingConfig{Level: "debug", Format: "json"}, &buf)
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/bad?q=1", nil)
	router.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"path":"/bad"`)
	assert.Contains(t, out, `"query":"q=1"`)
	assert.Contains(t, out, `"status":400`)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&config.LoggingConfig{Level: "loud", Format: "console"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger := NewLogger("test")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "component=")
}
