package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"katalog/internal/database"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// setupApp wires every handler over a private in-memory SQLite database.
func setupApp(t *testing.T, authEnabled bool) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	productRepo := repositories.NewGORMProductRepository(db)
	forbiddenRepo := repositories.NewGORMForbiddenWordRepository(db)
	historyService := services.NewHistoryService(repositories.NewGORMHistoryRepository(db), productRepo)
	productService := services.NewProductService(productRepo, forbiddenRepo, historyService)
	forbiddenService := services.NewForbiddenWordService(forbiddenRepo)
	require.NoError(t, forbiddenService.Seed([]string{"Spam"}))

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	var guards []fiber.Handler
	if authEnabled {
		authService := services.NewAuthService(repositories.NewGORMUserRepository(db), "test_jwt_secret")
		handlers.NewAuthHandler(authService).RegisterRoutes(apiV1)
		guards = append(guards, middleware.AuthRequired(authService))
	}
	handlers.NewProductHandler(productService, historyService).RegisterRoutes(apiV1, guards...)
	handlers.NewForbiddenWordHandler(forbiddenService).RegisterRoutes(apiV1, guards...)
	return app
}

type response struct {
	status   int
	location string
	body     []byte
}

func (r response) message(t *testing.T) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(r.body, &body), string(r.body))
	msg, _ := body["message"].(string)
	return msg
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: data}
}

func productBody(name string, price float64, quantity int, category any) map[string]any {
	return map[string]any{"name": name, "price": price, "quantity": quantity, "category": category}
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t, false)

	// Create
	resp := doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("ValidProduct", 100, 10, "Electronics"), "")
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	assert.Equal(t, "/api/v1/products/1", resp.location)

	var created models.ProductDTO
	require.NoError(t, json.Unmarshal(resp.body, &created))
	assert.Equal(t, "ValidProduct", created.Name)

	// Read back by the id from Location
	resp = doRequest(t, app, http.MethodGet, resp.location, nil, "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"name":"ValidProduct","price":100,"quantity":10,"category":"Electronics"}`, string(resp.body))

	// List
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "")
	require.Equal(t, http.StatusOK, resp.status)
	var list []models.ProductDTO
	require.NoError(t, json.Unmarshal(resp.body, &list))
	assert.Len(t, list, 1)

	// Update with an ordinal category
	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/1", productBody("Cookbook", 30, 2, 1), "")
	require.Equal(t, http.StatusNoContent, resp.status, string(resp.body))

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/1", nil, "")
	assert.JSONEq(t, `{"name":"Cookbook","price":30,"quantity":2,"category":"Books"}`, string(resp.body))

	// History of the update
	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/1/history", nil, "")
	require.Equal(t, http.StatusOK, resp.status)
	var history []models.ProductHistory
	require.NoError(t, json.Unmarshal(resp.body, &history))
	fields := make([]string, 0, len(history))
	for _, h := range history {
		fields = append(fields, h.FieldName)
	}
	assert.ElementsMatch(t, []string{"Name", "Price", "Quantity", "Category"}, fields)

	// Delete
	resp = doRequest(t, app, http.MethodDelete, "/api/v1/products/1", nil, "")
	assert.Equal(t, http.StatusNoContent, resp.status)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/1", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Product not found.", resp.message(t))
}

func TestCreateProductValidation(t *testing.T) {
	app := setupApp(t, false)
	require.Equal(t, http.StatusCreated,
		doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Laptop", 1200, 5, "Electronics"), "").status)

	tests := []struct {
		name string
		body any
		want string
	}{
		{"price out of range", productBody("Product", 60000, 10, "Electronics"), "Price for Electronics must be between 50 and 50000."},
		{"negative quantity", productBody("Product", 100, -1, "Electronics"), "Quantity cannot be negative."},
		{"blank name", productBody("  ", 100, 1, "Electronics"), "Product name is required."},
		{"short name", productBody("TV", 100, 1, "Electronics"), "Product name must be between 3 and 20 characters."},
		{"symbols", productBody("TV-Set", 100, 1, "Electronics"), "Product name can only contain letters and numbers."},
		{"forbidden", productBody("spam", 100, 1, "Electronics"), "Product name contains a forbidden word."},
		{"duplicate", productBody("laptop", 100, 1, "Electronics"), "A product with this name already exists."},
		{"unknown category name", productBody("Teddy", 100, 1, "Toys"), "Invalid category."},
		{"unknown category ordinal", productBody("Teddy", 100, 1, 5), "Invalid category."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/v1/products", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.status)
			assert.Equal(t, tt.want, resp.message(t))
		})
	}
}

func TestCreateProductStoresRoundedPrice(t *testing.T) {
	app := setupApp(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		bytes.NewReader([]byte(`{"name":"Precise","price":49999.123456789012345,"quantity":1,"category":"Electronics"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := doRequest(t, app, http.MethodGet, "/api/v1/products/1", nil, "")
	require.Equal(t, http.StatusOK, got.status)
	assert.JSONEq(t, `{"name":"Precise","price":49999.12,"quantity":1,"category":"Electronics"}`, string(got.body))
}

func TestMalformedRequests(t *testing.T) {
	app := setupApp(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte(`{"name":`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodGet, "/api/v1/products/abc", nil, "").status)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodPut, "/api/v1/products/-1", productBody("Valid", 100, 1, 0), "").status)
}

func TestMissingProducts(t *testing.T) {
	app := setupApp(t, false)

	resp := doRequest(t, app, http.MethodDelete, "/api/v1/products/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Product not found.", resp.message(t))

	resp = doRequest(t, app, http.MethodPut, "/api/v1/products/999", productBody("Product", 100, 10, "Electronics"), "")
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "Product not found.", resp.message(t))

	resp = doRequest(t, app, http.MethodGet, "/api/v1/products/999/history", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.status)
}

func TestForbiddenWordEndpoints(t *testing.T) {
	app := setupApp(t, false)

	resp := doRequest(t, app, http.MethodPost, "/api/v1/forbidden-words", map[string]string{"word": "Scam"}, "")
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	resp = doRequest(t, app, http.MethodPost, "/api/v1/forbidden-words", map[string]string{"word": "scam"}, "")
	assert.Equal(t, http.StatusConflict, resp.status)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/forbidden-words", map[string]string{"word": ""}, "")
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = doRequest(t, app, http.MethodGet, "/api/v1/forbidden-words", nil, "")
	require.Equal(t, http.StatusOK, resp.status)
	var words []models.ForbiddenWord
	require.NoError(t, json.Unmarshal(resp.body, &words))
	assert.Len(t, words, 2)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("SCAM", 100, 1, "Electronics"), "")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Product name contains a forbidden word.", resp.message(t))
}

func TestAuthGuardsMutations(t *testing.T) {
	app := setupApp(t, true)

	// Reads stay public, writes need a token.
	assert.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/api/v1/products", nil, "").status)
	assert.Equal(t, http.StatusUnauthorized,
		doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Guarded", 100, 1, "Electronics"), "").status)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, app, http.MethodDelete, "/api/v1/products/1", nil, "").status)

	user := map[string]string{"username": "editor", "email": "editor@example.com", "password": "password123"}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/auth/register", user, "")
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))
	assert.NotContains(t, string(resp.body), "password123")

	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", user, "")
	assert.Equal(t, http.StatusConflict, resp.status)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{"username": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "editor", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "editor", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, resp.status)
	var login map[string]string
	require.NoError(t, json.Unmarshal(resp.body, &login))
	token := login["token"]
	require.NotEmpty(t, token)

	resp = doRequest(t, app, http.MethodPost, "/api/v1/products", productBody("Guarded", 100, 1, "Electronics"), token)
	assert.Equal(t, http.StatusCreated, resp.status, string(resp.body))
}
