package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/logging"
	authmw "github.com/Skotchmaster/shop_api/internal/middleware/auth"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		lines = append(lines, m)
	}
	return lines
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "shop", "debug")

	e := echo.New()
	e.Use(RequestLogger(base))
	e.GET("/products/:id", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside_handler")
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})

	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "inside_handler", lines[0]["msg"])
	assert.Equal(t, "rid-1", lines[0]["request_id"])
	assert.Equal(t, "/products/:id", lines[0]["route"])
	assert.Equal(t, "shop", lines[0]["service"])

	assert.Equal(t, "request_completed", lines[1]["msg"])
	assert.EqualValues(t, 204, lines[1]["status"])
	assert.Equal(t, "/products/42", lines[1]["url"])
	assert.NotContains(t, lines[1], "account_id")

	assert.Equal(t, "WARN", lines[2]["level"])
	assert.EqualValues(t, 404, lines[2]["status"])
}

func TestRequestLogger_AccountID(t *testing.T) {
	var buf bytes.Buffer
	m, err := tokens.NewManager([]byte("logger-test-secret"))
	require.NoError(t, err)
	token, _, err := m.Issue("a@x.com", "acc-7")
	require.NoError(t, err)

	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "", "info")))
	e.GET("/orders", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authmw.NewGuard(m).RequireAuth)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "request_completed", lines[0]["msg"])
	assert.Equal(t, "acc-7", lines[0]["account_id"])
}
