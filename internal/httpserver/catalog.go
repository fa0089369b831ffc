package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/service"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	items, err := h.Svc.GetProducts(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar produtos do banco de dados.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de produto inválido.")
	}

	product, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Produto não encontrado.")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar o produto.")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("query")
	items, err := h.Svc.SearchProducts(ctx, q)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_failed", "status", 400, "reason", "empty query")
			return echo.NewHTTPError(http.StatusBadRequest, "Informe um termo de busca.")
		}
		l.Error("search_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar produtos.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	items, err := h.Svc.GetCategories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar categorias do banco de dados.")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category")

	slug := c.Param("slug")
	cat, err := h.Svc.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_category_failed", "status", 404, "slug", slug)
			return echo.NewHTTPError(http.StatusNotFound, "Categoria não encontrada.")
		}
		l.Error("get_category_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar os dados da categoria.")
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) GetCategoryProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category_products")

	slug := c.Param("slug")
	items, err := h.Svc.GetCategoryProducts(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_category_products_failed", "status", 404, "slug", slug)
			return echo.NewHTTPError(http.StatusNotFound, "Categoria não encontrada.")
		}
		l.Error("get_category_products_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao buscar produtos da categoria.")
	}
	return c.JSON(http.StatusOK, items)
}
