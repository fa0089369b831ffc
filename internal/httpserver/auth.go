package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/almadepapel/storefront/internal/events"
	"github.com/almadepapel/storefront/internal/logging"
	authmw "github.com/almadepapel/storefront/internal/middleware/auth"
	"github.com/almadepapel/storefront/internal/service"
	"github.com/almadepapel/storefront/internal/transport"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Session  *authmw.Middleware
	Producer events.Publisher
	// Secure marks the session cookie Secure; enabled in production.
	Secure bool
}

func CreateCookie(name, value, path string, exp time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// publish hands the event off to a detached goroutine; a slow or
// unreachable broker must not delay the response.
func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	l := logging.FromContext(c.Request().Context())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
			l.Error("event publish failed", "topic", topic, "error", err)
		}
	}()
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
	}

	if err := h.Svc.Register(ctx, req.Name, req.Email, req.Password, req.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_failed", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
		case errors.Is(err, service.ErrPasswordMismatch):
			l.Warn("register_failed", "status", 400, "reason", "password mismatch")
			return echo.NewHTTPError(http.StatusBadRequest, "As senhas não coincidem.")
		case errors.Is(err, service.ErrEmailTaken):
			l.Warn("register_failed", "status", 400, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusBadRequest, "Este e-mail já está cadastrado.")
		default:
			l.Error("register_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Erro no servidor. Tente novamente.")
		}
	}

	h.publish(c, events.TopicUserEvents, req.Email, map[string]any{
		"type":  "user_registered",
		"email": req.Email,
	})

	l.Info("register_success")
	return c.JSON(http.StatusCreated, echo.Map{"message": "Cadastro realizado com sucesso!"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
	}

	sess, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Por favor, preencha todos os campos.")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "E-mail ou senha inválidos.")
		default:
			l.Error("login_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Erro no servidor.")
		}
	}

	c.SetCookie(CreateCookie(authmw.CookieName, sess.Token, "/", sess.Exp, h.Secure))

	h.publish(c, events.TopicUserEvents, fmt.Sprint(sess.User.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": sess.User.ID,
		"email":  sess.User.Email,
	})

	l.Info("login_success", "userID", sess.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login bem-sucedido!",
		"user": echo.Map{
			"id":    sess.User.ID,
			"name":  sess.User.Name,
			"email": sess.User.Email,
			"role":  sess.User.Role,
		},
	})
}

func (h *AuthHTTP) GetSession(c echo.Context) error {
	claims, err := h.Session.ClaimsFromRequest(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":    claims.UserID,
			"name":  claims.Name,
			"email": claims.Email,
			"role":  claims.Role,
		},
	})
}

// Logout clears the cookie unconditionally; there is no server-side
// session state to revoke.
func (h *AuthHTTP) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(authmw.CookieName, "", "/", expired, h.Secure))
	return c.JSON(http.StatusOK, echo.Map{"message": "Você saiu da sua conta."})
}
