package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/almadepapel/storefront/internal/logging"
	"github.com/almadepapel/storefront/internal/service"
	"github.com/almadepapel/storefront/internal/transport"
)

type ContactHTTP struct {
	Svc *service.ContactService
}

func (h *ContactHTTP) Relay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "contact.relay")

	var req transport.ContactRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("contact_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
	}

	if err := h.Svc.Relay(ctx, req); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("contact_failed", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
		}
		l.Error("contact_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Erro ao enviar a mensagem. Tente novamente.")
	}

	l.Info("contact_relayed")
	return c.JSON(http.StatusOK, echo.Map{"message": "Mensagem enviada com sucesso!"})
}
