package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/almadepapel/storefront/internal/metrics"
	authmw "github.com/almadepapel/storefront/internal/middleware/auth"
	"github.com/almadepapel/storefront/internal/middleware/ratelimit"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	AdminHandler   *AdminHTTP
	ContactHandler *ContactHTTP
	Session        *authmw.Middleware
	Metrics        *metrics.Metrics
	// StaticRoot is the directory with the storefront pages; empty
	// disables static serving.
	StaticRoot string
}

func Register(e *echo.Echo, d *Deps) {
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware)
	}

	e.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", metrics.Handler())

	authLimit := ratelimit.Middleware(1, 5)

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register, authLimit)
	api.POST("/login", d.AuthHandler.Login, authLimit)
	api.GET("/session", d.AuthHandler.GetSession)
	api.POST("/logout", d.AuthHandler.Logout)
	api.POST("/contact", d.ContactHandler.Relay, authLimit)

	api.GET("/products", d.CatalogHandler.GetProducts)
	api.GET("/products/search", d.CatalogHandler.SearchProducts)
	api.GET("/products/:id", d.CatalogHandler.GetProduct)

	api.GET("/categorias", d.CatalogHandler.GetCategories)
	api.GET("/categorias/:slug", d.CatalogHandler.GetCategory)
	api.GET("/categorias/:slug/produtos", d.CatalogHandler.GetCategoryProducts)

	admin := api.Group("/admin", d.Session.AdminOnly)
	admin.POST("/products", d.AdminHandler.CreateProduct)
	admin.PUT("/products/:id", d.AdminHandler.UpdateProduct)
	admin.DELETE("/products/:id", d.AdminHandler.DeleteProduct)

	if d.StaticRoot != "" {
		e.Static("/", d.StaticRoot)
	}
}
