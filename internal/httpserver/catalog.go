package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_api/internal/logging"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/service"
	"github.com/Skotchmaster/shop_api/internal/transport"
	"github.com/Skotchmaster/shop_api/internal/util"
)

const productNotFound = "product not found"

type CatalogHTTP struct {
	Svc   *service.CatalogService
	Links Links
}

func (h *CatalogHTTP) view(p models.Product) transport.ProductView {
	return transport.ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		ProductImage: p.ProductImage,
		Request:      h.Links.To(http.MethodGet, "/products/"+p.ID.String()),
	}
}

func (h *CatalogHTTP) list(page, size int, total int64, items []models.Product) transport.ProductList {
	views := make([]transport.ProductView, 0, len(items))
	for _, p := range items {
		views = append(views, h.view(p))
	}
	return transport.ProductList{
		Count:    len(views),
		Total:    total,
		Page:     page,
		Size:     size,
		Products: views,
	}
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		return fail(l, "get_products_failed", err, productNotFound)
	}

	return c.JSON(http.StatusOK, h.list(page, limit, total, items))
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "search_failed", err, productNotFound)
	}

	return c.JSON(http.StatusOK, h.list(page, limit, total, items))
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	req := transport.CreateProductRequest{Name: c.FormValue("name")}
	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			l.Warn("create_product_failed", "status", 400, "reason", "price is not a number", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
		}
		req.Price = &price
	}
	if err := c.Validate(&req); err != nil {
		return fail(l, "create_product_failed", err, productNotFound)
	}

	var img transport.ImageUpload
	fh, err := c.FormFile("productImage")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		l.Warn("create_product_failed", "status", 400, "reason", "invalid multipart body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	default:
		f, err := fh.Open()
		if err != nil {
			return fail(l, "create_product_failed", fmt.Errorf("open upload: %w", err), productNotFound)
		}
		defer f.Close()
		img = transport.ImageUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		}
	}

	prod, err := h.Svc.CreateProduct(ctx, req, img)
	if err != nil {
		return fail(l, "create_product_failed", err, productNotFound)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, transport.ProductView{
		ID:           prod.ID,
		Name:         prod.Name,
		Price:        prod.Price,
		ProductImage: prod.ProductImage,
		Request:      h.Links.Self(c),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "get_product_failed", err)
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err, productNotFound)
	}

	v := h.view(*prod)
	v.Request = h.Links.To(http.MethodGet, "/products")
	return c.JSON(http.StatusOK, v)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "patch_product_failed", err)
	}

	var ops []transport.PatchOp
	if err := (&echo.DefaultBinder{}).BindBody(c, &ops); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, id, ops)
	if err != nil {
		return fail(l, "patch_product_failed", err, productNotFound)
	}

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, h.view(*prod))
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badID(l, "delete_product_failed", err)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product_failed", err, productNotFound)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: "product deleted",
		Request: h.Links.To(http.MethodPost, "/products"),
	})
}
