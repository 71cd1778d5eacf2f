package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/catalog"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "apples", "nameBg": "Ябълки", "nameEn": "Apples", "unit": "kg", "pricePerUnit": "2.80"},
		{"id": "honey-jar", "nameBg": "Мед", "nameEn": "Honey", "unit": "jar", "pricePerUnit": "12.00"}
	]`), 0o644))

	c, err := catalog.Load(path, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestProductHandler_GetAll(t *testing.T) {
	h := NewProductHandler(testCatalog(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "apples", products[0].ID)
	assert.Equal(t, "Ябълки", products[0].NameBG)
}

func TestProductHandler_GetAll_MethodNotAllowed(t *testing.T) {
	h := NewProductHandler(testCatalog(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.GetAll(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
