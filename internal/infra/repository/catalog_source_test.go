package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "products": [
    {"id": "p1", "name": "Mug", "description": "Ceramic", "price": "8.50", "category": "home", "image": "img/mug.png"},
    {"id": "p2", "name": "Scarf", "description": "Wool", "price": 15, "category": "clothing", "image": "img/scarf.png"}
  ],
  "categories": [
    {"id": "home", "name": "Home"},
    {"id": "clothing", "name": "Clothing"}
  ]
}`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCatalogFileSource_Load(t *testing.T) {
	src := infraRepo.NewCatalogFileSource(writeCatalog(t, catalogJSON))

	c, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Products, 2)
	assert.Equal(t, "p1", c.Products[0].ID)
	assert.Equal(t, "8.50", c.Products[0].Price.StringFixed(2))
	assert.Equal(t, "15.00", c.Products[1].Price.StringFixed(2))
	assert.Equal(t, "home", c.Products[0].Category)
	require.Len(t, c.Categories, 2)
	assert.Equal(t, "Clothing", c.Categories[1].Name)
}

func TestCatalogFileSource_Missing(t *testing.T) {
	src := infraRepo.NewCatalogFileSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCatalogFileSource_Malformed(t *testing.T) {
	src := infraRepo.NewCatalogFileSource(writeCatalog(t, `{"products": [`))

	_, err := src.Load(context.Background())
	assert.ErrorContains(t, err, "decode catalog")
}

func TestCatalogFileSource_EmptyDocument(t *testing.T) {
	src := infraRepo.NewCatalogFileSource(writeCatalog(t, `{}`))

	c, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c.Products)
	assert.NotNil(t, c.Categories)
	assert.Empty(t, c.Products)
}

func TestCatalogHTTPSource_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/catalog.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	src := infraRepo.NewCatalogHTTPSource(srv.URL+"/catalog.json", srv.Client())
	c, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Products, 2)
}

func TestCatalogHTTPSource_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := infraRepo.NewCatalogHTTPSource(srv.URL, nil)
	_, err := src.Load(context.Background())
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestCatalogHTTPSource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := infraRepo.NewCatalogHTTPSource(srv.URL, nil)
	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCatalogHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src := infraRepo.NewCatalogHTTPSource(url, nil)
	_, err := src.Load(context.Background())
	assert.ErrorContains(t, err, "fetch catalog")
}
