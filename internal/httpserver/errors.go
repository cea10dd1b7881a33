package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/service"
)

// fail logs err under event and converts it to the HTTP error the client sees.
// Internal error text never reaches the response.
func fail(l *slog.Logger, event string, err error, notFound string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid request", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	case errors.Is(err, service.ErrAuthFailed):
		l.Warn(event, "status", 401, "reason", "auth failed", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, service.AuthFailedMessage)
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", notFound, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "account already exists", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "account already exists")
	case errors.Is(err, service.ErrSearchDisabled):
		l.Warn(event, "status", 503, "reason", "search not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	default:
		l.Error(event, "status", 500, "reason", "unexpected error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func badID(l *slog.Logger, event string, err error) error {
	l.Warn(event, "status", 400, "reason", "id is not a uuid", "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
}
