package httpserver_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almadepapel/storefront/internal/models"
)

func TestGetProductsReturnsFullList(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("Romance", "romance")
	env.seedProduct("Dom Casmurro", "Machado de Assis", cat.ID, 39.90)
	env.seedProduct("Grande Sertão", "Guimarães Rosa", cat.ID, 49.90)

	rec := env.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Dom Casmurro", items[0].Name)
	assert.Equal(t, 39.90, items[0].Price)
}

func TestGetProductByID(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("Romance", "romance")
	prod := env.seedProduct("Dom Casmurro", "Machado de Assis", cat.ID, 39.90)

	rec := env.do(http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, prod.ID, got.ID)
	assert.Equal(t, prod.Author, got.Author)
}

func TestGetProductNotFoundIsNot500(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/products/search", "/api/products/search?query=", "/api/products/search?query=%20"} {
		rec := env.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestSearchMatchesNameAndAuthorCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCategory("Romance", "romance")
	env.seedProduct("Dom Casmurro", "Machado de Assis", cat.ID, 39.90)
	env.seedProduct("Vidas Secas", "Graciliano Ramos", cat.ID, 29.90)

	rec := env.do(http.MethodGet, "/api/products/search?query=CASMURRO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dom Casmurro", items[0].Name)

	rec = env.do(http.MethodGet, "/api/products/search?query=graciliano", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Vidas Secas", items[0].Name)
}

func TestSearchNoMatchReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/products/search?query=inexistente", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.seedCategory("Romance", "romance")
	env.seedCategory("Poesia", "poesia")

	rec := env.do(http.MethodGet, "/api/categorias", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)
}

func TestGetCategoryBySlug(t *testing.T) {
	env := newTestEnv(t)
	env.seedCategory("Romance", "romance")

	rec := env.do(http.MethodGet, "/api/categorias/romance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Romance", got.Name)

	rec = env.do(http.MethodGet, "/api/categorias/ficcao", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCategoryProducts(t *testing.T) {
	env := newTestEnv(t)
	romance := env.seedCategory("Romance", "romance")
	poesia := env.seedCategory("Poesia", "poesia")
	env.seedProduct("Dom Casmurro", "Machado de Assis", romance.ID, 39.90)
	env.seedProduct("Libertinagem", "Manuel Bandeira", poesia.ID, 25.00)

	rec := env.do(http.MethodGet, "/api/categorias/romance/produtos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dom Casmurro", items[0].Name)
}

func TestGetCategoryProductsUnknownSlug(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/categorias/nao-existe/produtos", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Every page the storefront scripts link to must be served; product cards
// link produto.html?id=N.
func TestStorefrontPagesServed(t *testing.T) {
	env := newTestEnv(t)

	pages := []string{
		"/index.html",
		"/produto.html",
		"/busca.html",
		"/categorias.html",
		"/categoria.html",
		"/favoritos.html",
		"/carrinho.html",
		"/contato.html",
		"/perfil.html",
		"/admin.html",
	}
	for _, page := range pages {
		rec := env.do(http.MethodGet, page, nil)
		assert.Equal(t, http.StatusOK, rec.Code, page)
	}
}
