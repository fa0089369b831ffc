package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/almadepapel/storefront/internal/events"
	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/service"
	"github.com/almadepapel/storefront/internal/transport"
)

// AdminHTTP carries the product mutation routes. The admin gate runs as
// middleware before any of these handlers.
type AdminHTTP struct {
	Svc      *service.CatalogService
	Producer events.Publisher
}

// publish hands the event off to a detached goroutine; a slow or
// unreachable broker must not delay the response.
func (h *AdminHTTP) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	l := logging.FromContext(c.Request().Context())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Producer.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
			l.Error("event publish failed", "topic", events.TopicProductEvents, "error", err)
		}
	}()
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Dados do produto inválidos.")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("product_create_failed", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Preencha todos os campos obrigatórios do produto.")
		}
		l.Error("product_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao salvar o produto.")
	}

	h.publish(c, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product_created", "productID", prod.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Livro adicionado com sucesso!",
		"product": prod,
	})
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de produto inválido.")
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Dados do produto inválidos.")
	}

	prod, err := h.Svc.UpdateProduct(ctx, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_update_failed", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Preencha todos os campos obrigatórios do produto.")
		case errors.Is(err, gorm.ErrRecordNotFound):
			l.Warn("product_update_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Produto não encontrado.")
		default:
			l.Error("product_update_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao salvar o produto.")
		}
	}

	h.publish(c, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("product_updated", "productID", prod.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Livro atualizado com sucesso!",
		"product": prod,
	})
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("product_delete_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Identificador de produto inválido.")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("product_delete_failed", "status", 404, "id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Produto não encontrado.")
		}
		l.Error("product_delete_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao excluir o produto.")
	}

	h.publish(c, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("product_deleted", "productID", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Livro excluído com sucesso!"})
}
