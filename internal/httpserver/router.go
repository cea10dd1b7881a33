package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_api/internal/db"
	authmw "github.com/Skotchmaster/shop_api/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/shop_api/internal/middleware/logging"
	"github.com/Skotchmaster/shop_api/internal/storage"
)

type Deps struct {
	DB        *gorm.DB
	Guard     *authmw.Guard
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Orders    *OrderHTTP
	UploadDir string
}

// Middleware is the stack every request passes through before routing.
func Middleware(base *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		loggingmw.RequestLogger(base),
		ecM.CORSWithConfig(ecM.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowHeaders: []string{
				echo.HeaderOrigin,
				"X-Requested-With",
				echo.HeaderContentType,
				echo.HeaderAccept,
				echo.HeaderAuthorization,
			},
			AllowMethods: []string{
				http.MethodPut,
				http.MethodPost,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodGet,
			},
		}),
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx, d.DB); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	if d.UploadDir != "" {
		e.Static("/"+storage.PublicPrefix, d.UploadDir)
	}

	user := e.Group("/user")
	user.POST("/signup", d.Auth.Signup)
	user.POST("/login", d.Auth.Login)
	user.GET("/:id", d.Auth.GetAccount, d.Guard.RequireAuth)
	user.DELETE("/:id", d.Auth.DeleteAccount, d.Guard.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.Catalog.GetProducts)
	products.GET("/search", d.Catalog.SearchProducts)
	products.GET("/:id", d.Catalog.GetProduct)
	products.POST("", d.Catalog.CreateProduct, d.Guard.RequireAuth)
	products.PATCH("/:id", d.Catalog.PatchProduct, d.Guard.RequireAuth)
	products.DELETE("/:id", d.Catalog.DeleteProduct, d.Guard.RequireAuth)

	orders := e.Group("/orders", d.Guard.RequireAuth)
	orders.GET("", d.Orders.GetOrders)
	orders.POST("", d.Orders.CreateOrder)
	orders.GET("/:id", d.Orders.GetOrder)
	orders.DELETE("/:id", d.Orders.DeleteOrder)
}
