package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/tokens"
)

const (
	bearerPrefix = "bearer "
	ctxIdentity  = "identity"
)

// Guard admits a request only when its Authorization header carries a valid
// access token.
type Guard struct {
	Tokens *tokens.Manager
}

func NewGuard(m *tokens.Manager) *Guard {
	return &Guard{Tokens: m}
}

func (g *Guard) Authorize(header string) (*tokens.Identity, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return nil, service.ErrAuthFailed
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return nil, service.ErrAuthFailed
	}

	id, err := g.Tokens.Parse(raw)
	if err != nil {
		return nil, service.ErrAuthFailed
	}
	return id, nil
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx)

		id, err := g.Authorize(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "missing or invalid bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, service.AuthFailedMessage)
		}

		c.SetRequest(c.Request().WithContext(logging.With(ctx, "account_id", id.AccountID)))
		c.Set(ctxIdentity, id)
		return next(c)
	}
}

// IdentityFrom returns the identity stored by RequireAuth, or nil.
func IdentityFrom(c echo.Context) *tokens.Identity {
	id, _ := c.Get(ctxIdentity).(*tokens.Identity)
	return id
}
