package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
)

type AuthHTTP struct {
	Svc   *service.AuthService
	Links Links
}

func (h *AuthHTTP) bindCredentials(c echo.Context) (transport.CredentialsRequest, error) {
	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	return req, c.Validate(&req)
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.signup")

	req, err := h.bindCredentials(c)
	if err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	account, err := h.Svc.Signup(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "signup_failed", err, "account not found")
	}

	return c.JSON(http.StatusCreated, transport.SignupResponse{
		Message: "account created",
		Account: transport.AccountView{ID: account.ID, Email: account.Email},
		Request: h.Links.Self(c),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(l, "login_failed", err, "account not found")
	}

	return c.JSON(http.StatusOK, transport.LoginResponse{
		Token:     res.AccessToken,
		ExpiresAt: res.AccessExp,
		Request:   h.Links.Self(c),
	})
}

func (h *AuthHTTP) GetAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "get_account_failed", err)
	}

	account, err := h.Svc.GetAccount(ctx, id)
	if err != nil {
		return fail(l, "get_account_failed", err, "account not found")
	}

	return c.JSON(http.StatusOK, transport.AccountResponse{
		Account: transport.AccountView{ID: account.ID, Email: account.Email},
		Request: h.Links.Self(c),
	})
}

func (h *AuthHTTP) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "delete_account_failed", err)
	}

	if err := h.Svc.DeleteAccount(ctx, id); err != nil {
		return fail(l, "delete_account_failed", err, "account not found")
	}

	l.Info("delete_account_success", "deleted_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: "account deleted",
		Request: h.Links.To(http.MethodPost, "/user/signup"),
	})
}
