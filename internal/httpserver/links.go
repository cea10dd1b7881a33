package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/transport"
)

// Links builds the hypermedia pointers attached to responses.
type Links struct {
	BaseURL string
}

func (l Links) To(method, path string) transport.Link {
	return transport.Link{Type: method, URL: l.BaseURL + path}
}

// Self points back at the request being served.
func (l Links) Self(c echo.Context) transport.Link {
	return l.To(c.Request().Method, c.Request().URL.Path)
}
