package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shop/internal/handlers"
	"shop/internal/middleware"
	"shop/internal/models"
	"shop/internal/repositories"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app      *fiber.App
	userRepo repositories.UserRepository
}

// setupApp wires the full handler stack against an in-memory SQLite
// database, mirroring the wiring in main.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.CartItem{}, &models.Order{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartItemRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, services.TokenConfig{
		Secret: "test_jwt_secret",
		TTL:    time.Hour,
	})
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, nil)
	uploadService := services.NewUploadService(t.TempDir())

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	handlers.NewProductHandler(productService).RegisterRoutes(api)

	authRequired := middleware.AuthRequired(authService)
	handlers.NewCartHandler(cartService, authService).RegisterRoutes(api, authRequired)
	handlers.NewOrderHandler(orderService, authService).RegisterRoutes(api, authRequired)

	admin := api.Group("/admin", authRequired, middleware.AdminRequired())
	handlers.NewAdminProductHandler(productService).RegisterRoutes(admin)
	handlers.NewUploadHandler(uploadService).RegisterRoutes(admin)

	return &testEnv{app: app, userRepo: userRepo}
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// register creates a user through the API and returns their token.
func (e *testEnv) register(t *testing.T, username, password string) string {
	t.Helper()

	resp := e.doJSON(t, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"username": username, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body["accessToken"])
	return body["accessToken"]
}

// registerAdmin creates an admin directly in the store (roles are not
// settable through the API) and logs them in.
func (e *testEnv) registerAdmin(t *testing.T) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Create(&models.User{
		Username: "admin@example.com",
		Password: string(hashed),
		Roles:    models.RoleUser + "," + models.RoleAdmin,
	}))

	resp := e.doJSON(t, http.MethodPost, "/api/auth/login", "",
		fiber.Map{"username": "admin@example.com", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	return body["accessToken"]
}

func (e *testEnv) createProduct(t *testing.T, adminToken string, draft fiber.Map) models.Product {
	t.Helper()

	resp := e.doJSON(t, http.MethodPost, "/api/admin/products/", adminToken, draft)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var product models.Product
	decodeBody(t, resp, &product)
	require.NotEmpty(t, product.ID)
	return product
}

func TestRegisterAndLogin(t *testing.T) {
	env := setupApp(t)

	token := env.register(t, "user@example.com", "password123")
	assert.NotEmpty(t, token)

	// Second registration with the same username conflicts.
	resp := env.doJSON(t, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"username": "user@example.com", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Username must be email-shaped, password at least six characters.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"username": "not-an-email", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/auth/register", "",
		fiber.Map{"username": "short@example.com", "password": "12345"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Login with the right and wrong password.
	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", "",
		fiber.Map{"username": "user@example.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/auth/login", "",
		fiber.Map{"username": "user@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPublicCatalog(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)
	created := env.createProduct(t, adminToken, fiber.Map{
		"name": "Laptop", "price": 1200.00, "stock": 10,
	})

	// Catalog reads require no token.
	resp := env.doJSON(t, http.MethodGet, "/api/products/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decodeBody(t, resp, &products)
	assert.Len(t, products, 1)

	resp = env.doJSON(t, http.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var product models.Product
	decodeBody(t, resp, &product)
	assert.Equal(t, "Laptop", product.Name)

	resp = env.doJSON(t, http.MethodGet, "/api/products/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminGuard(t *testing.T) {
	env := setupApp(t)
	userToken := env.register(t, "user@example.com", "password123")

	// No token at all.
	resp := env.doJSON(t, http.MethodPost, "/api/admin/products/", "",
		fiber.Map{"name": "X", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Valid token without the admin role.
	resp = env.doJSON(t, http.MethodPost, "/api/admin/products/", userToken,
		fiber.Map{"name": "X", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The cart requires a token too.
	resp = env.doJSON(t, http.MethodGet, "/api/cart/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminProductCRUD(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)

	// Out-of-range values are clamped on create, not rejected.
	created := env.createProduct(t, adminToken, fiber.Map{
		"name":  "  Gadget  ",
		"price": -5,
		"stock": 20000,
	})
	assert.Equal(t, "Gadget", created.Name)
	assert.True(t, created.Price.IsZero())
	assert.Equal(t, 10_000, *created.Stock)

	// Update re-applies the same limits.
	resp := env.doJSON(t, http.MethodPut, "/api/admin/products/"+created.ID, adminToken,
		fiber.Map{"name": "", "price": 899.99, "stock": 45})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Untitled", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("899.99")))
	assert.Equal(t, 45, *updated.Stock)

	resp = env.doJSON(t, http.MethodPut, "/api/admin/products/no-such-id", adminToken,
		fiber.Map{"name": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodDelete, "/api/admin/products/"+created.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCartAndCheckoutFlow(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)
	product := env.createProduct(t, adminToken, fiber.Map{
		"name": "Keyboard", "price": 10.00, "stock": 5,
	})
	userToken := env.register(t, "buyer@example.com", "password123")

	// Add two, then one more via the default quantity.
	resp := env.doJSON(t, http.MethodPost, "/api/cart/add/"+product.ID+"?quantity=2", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = env.doJSON(t, http.MethodPost, "/api/cart/add/"+product.ID, userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/cart/", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.CartItem
	decodeBody(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	// Set it back down to two.
	resp = env.doJSON(t, http.MethodPost, "/api/cart/set/"+product.ID+"?quantity=2", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Checkout the whole cart.
	resp = env.doJSON(t, http.MethodPost, "/api/orders/", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("20")),
		"expected total 20, got %s", order.TotalPrice)

	// Stock was decremented and the cart cleared.
	resp = env.doJSON(t, http.MethodGet, "/api/products/"+product.ID, "", nil)
	var after models.Product
	decodeBody(t, resp, &after)
	assert.Equal(t, 3, *after.Stock)

	resp = env.doJSON(t, http.MethodGet, "/api/cart/", userToken, nil)
	decodeBody(t, resp, &items)
	assert.Empty(t, items)

	resp = env.doJSON(t, http.MethodGet, "/api/orders/", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// The cart is empty now, so another checkout fails.
	resp = env.doJSON(t, http.MethodPost, "/api/orders/", userToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// A product must be addable again after its row was removed, and after a
// checkout consumed it. The (user, product) unique index must not be held
// hostage by dead rows.
func TestCartReAddAfterRemoveAndCheckout(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)
	product := env.createProduct(t, adminToken, fiber.Map{
		"name": "Mouse", "price": 10.00, "stock": 10,
	})
	userToken := env.register(t, "buyer@example.com", "password123")

	addAndExpectQuantity := func(t *testing.T, want int) {
		t.Helper()
		resp := env.doJSON(t, http.MethodPost, "/api/cart/add/"+product.ID, userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = env.doJSON(t, http.MethodGet, "/api/cart/", userToken, nil)
		var items []models.CartItem
		decodeBody(t, resp, &items)
		require.Len(t, items, 1)
		assert.Equal(t, want, items[0].Quantity)
	}

	addAndExpectQuantity(t, 1)

	resp := env.doJSON(t, http.MethodDelete, "/api/cart/remove/"+product.ID, userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Re-add after an explicit remove.
	addAndExpectQuantity(t, 1)

	resp = env.doJSON(t, http.MethodPost, "/api/orders/", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Buy the same product again after checkout cleared the cart.
	addAndExpectQuantity(t, 1)
}

func TestCartErrors(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)
	outOfStock := env.createProduct(t, adminToken, fiber.Map{
		"name": "Sold out", "price": 10, "stock": 0,
	})
	userToken := env.register(t, "buyer@example.com", "password123")

	resp := env.doJSON(t, http.MethodPost, "/api/cart/add/no-such-id", userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/cart/add/"+outOfStock.ID, userToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/cart/set/"+outOfStock.ID+"?quantity=1", userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Removing a row that never existed still succeeds.
	resp = env.doJSON(t, http.MethodDelete, "/api/cart/remove/"+outOfStock.ID, userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutSubsetSelection(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)
	wanted := env.createProduct(t, adminToken, fiber.Map{
		"name": "Wanted", "price": 10, "stock": 5,
	})
	kept := env.createProduct(t, adminToken, fiber.Map{
		"name": "Kept", "price": 99, "stock": 5,
	})
	userToken := env.register(t, "buyer@example.com", "password123")

	for _, id := range []string{wanted.ID, kept.ID} {
		resp := env.doJSON(t, http.MethodPost, "/api/cart/add/"+id, userToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.doJSON(t, http.MethodGet, "/api/cart/", userToken, nil)
	var items []models.CartItem
	decodeBody(t, resp, &items)
	require.Len(t, items, 2)
	var wantedRowID string
	for _, item := range items {
		if item.ProductID == wanted.ID {
			wantedRowID = item.ID
		}
	}
	require.NotEmpty(t, wantedRowID)

	// A selection matching nothing is a distinct 400 from an empty cart.
	resp = env.doJSON(t, http.MethodPost, "/api/orders/", userToken,
		fiber.Map{"cartItemIds": []string{"no-such-row"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodPost, "/api/orders/", userToken,
		fiber.Map{"cartItemIds": []string{wantedRowID}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(10)))

	// The unselected row survives.
	resp = env.doJSON(t, http.MethodGet, "/api/cart/", userToken, nil)
	decodeBody(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ProductID)
}

func TestImageUpload(t *testing.T) {
	env := setupApp(t)
	adminToken := env.registerAdmin(t)

	upload := func(t *testing.T, filename, content string) *http.Response {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/admin/upload-image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+adminToken)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload(t, "picture.JPG", "fake image bytes")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.True(t, strings.HasPrefix(body["url"], "/uploads/"))
	assert.True(t, strings.HasSuffix(body["url"], ".jpg"))

	resp = upload(t, "empty.png", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing file field entirely.
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload-image", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
