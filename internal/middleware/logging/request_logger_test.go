package loggingmw_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	loggingmw "github.com/almadepapel/storefront/internal/middleware/logging"
)

func serve(t *testing.T, handler echo.HandlerFunc, rid string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(loggingmw.RequestLogger(base))
	e.GET("/livros", handler)

	req := httptest.NewRequest(http.MethodGet, "/livros", nil)
	if rid != "" {
		req.Header.Set(echo.HeaderXRequestID, rid)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return rec, line
}

func TestRequestLoggerEmitsOneLine(t *testing.T) {
	t.Parallel()

	rec, line := serve(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, "rid-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

	assert.Equal(t, "http_request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/livros", line["route"])
	assert.Equal(t, "rid-1", line["request_id"])
	assert.EqualValues(t, 200, line["status"])
}

func TestRequestLoggerClientErrorIsWarn(t *testing.T) {
	t.Parallel()

	rec, line := serve(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	}, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 400, line["status"])
}
