package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
	"github.com/Skotchmaster/shop_api/internal/util"
)

const orderNotFound = "order not found"

type OrderHTTP struct {
	Svc   *service.OrderService
	Links Links
}

func (h *OrderHTTP) view(o models.Order) transport.OrderView {
	v := transport.OrderView{
		ID:        o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Request:   h.Links.To(http.MethodGet, "/orders/"+o.ID.String()),
	}
	if o.Product != nil {
		v.Product = &transport.ProductSummary{ID: o.Product.ID, Name: o.Product.Name, Price: o.Product.Price}
	}
	return v
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.GetOrders(ctx, offset, limit)
	if err != nil {
		return fail(l, "get_orders_failed", err, orderNotFound)
	}

	views := make([]transport.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, h.view(o))
	}
	return c.JSON(http.StatusOK, transport.OrderList{
		Count:  len(views),
		Total:  total,
		Page:   page,
		Size:   limit,
		Orders: views,
	})
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_order_failed", err, productNotFound)
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return fail(l, "create_order_failed", err, productNotFound)
	}

	l.Info("create_order_success", "order_id", order.ID)
	v := h.view(*order)
	v.Request = h.Links.Self(c)
	return c.JSON(http.StatusCreated, v)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "get_order_failed", err)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return fail(l, "get_order_failed", err, orderNotFound)
	}

	v := h.view(*order)
	v.Request = h.Links.To(http.MethodGet, "/orders")
	return c.JSON(http.StatusOK, v)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "delete_order_failed", err)
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		return fail(l, "delete_order_failed", err, orderNotFound)
	}

	l.Info("delete_order_success", "order_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: "order deleted",
		Request: h.Links.To(http.MethodPost, "/orders"),
	})
}
