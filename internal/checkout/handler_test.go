package checkout_test

import (
	"net/http"
	"strings"
	"testing"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/server"
	"envanter-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	u := models.User{Username: "musteri", Email: "musteri@test.local", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, database.DB.Create(&u).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, &u)
	require.NoError(t, err)
	return token
}

func seedProduct(t *testing.T, name string, price float64, quantity int) models.Product {
	t.Helper()
	p := models.Product{
		Category: "snacks",
		ItemName: name,
		Price:    price,
		Quantity: quantity,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func billing(cartItems []map[string]any) map[string]any {
	return map[string]any{
		"name":       "Ali Veli",
		"address":    "Çarşı Cad. 5",
		"city":       "İzmir",
		"cardNumber": "4111111111111111",
		"expiryDate": "12/27",
		"cvv":        "123",
		"cartItems":  cartItems,
	}
}

func TestAddCheckout_DecrementsStockAndComputesTotal(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := userToken(t, cfg)

	seedProduct(t, "Cips", 19.99, 10)
	seedProduct(t, "Sakız", 0.10, 5)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", token, billing([]map[string]any{
		{"itemName": "Cips", "quantity": 3, "price": 19.99},
		{"itemName": "Sakız", "quantity": 1, "price": 0.10},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		ID         uint    `json:"id"`
		TotalPrice float64 `json:"totalPrice"`
	}
	testutil.DecodeBody(t, resp, &body)

	// 3×19.99 + 1×0.10 = 60.07, kuruşu kuruşuna
	assert.InDelta(t, 60.07, body.TotalPrice, 0.0001)

	var cips, sakiz models.Product
	require.NoError(t, database.DB.Where("item_name = ?", "Cips").First(&cips).Error)
	require.NoError(t, database.DB.Where("item_name = ?", "Sakız").First(&sakiz).Error)
	assert.Equal(t, 7, cips.Quantity)
	assert.Equal(t, 4, sakiz.Quantity)

	var saved models.Checkout
	require.NoError(t, database.DB.First(&saved, body.ID).Error)
	assert.Len(t, saved.CartItems, 2)
	assert.InDelta(t, 60.07, saved.TotalPrice, 0.0001)
}

func TestAddCheckout_PaddedItemNameHitsSameProduct(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := userToken(t, cfg)

	seedProduct(t, "Cips", 19.99, 10)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", token, billing([]map[string]any{
		{"itemName": "  Cips  ", "quantity": 2, "price": 19.99},
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Düşülen ürün ile sepete yazılan ad aynı
	var cips models.Product
	require.NoError(t, database.DB.Where("item_name = ?", "Cips").First(&cips).Error)
	assert.Equal(t, 8, cips.Quantity)

	var saved models.Checkout
	require.NoError(t, database.DB.First(&saved).Error)
	require.Len(t, saved.CartItems, 1)
	assert.Equal(t, "Cips", saved.CartItems[0].ItemName)
}

func TestAddCheckout_UnderStockLeavesEverythingUntouched(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := userToken(t, cfg)

	seedProduct(t, "Cips", 19.99, 10)
	seedProduct(t, "Sakız", 0.10, 2)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", token, billing([]map[string]any{
		{"itemName": "Cips", "quantity": 3, "price": 19.99},
		{"itemName": "Sakız", "quantity": 5, "price": 0.10}, // stok 2
	}))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, resp, &body)
	assert.True(t, strings.Contains(body.Message, "Sakız"), "hatalı kalem adıyla dönmeli: %s", body.Message)

	// Hiçbir ürün düşülmedi
	var cips, sakiz models.Product
	require.NoError(t, database.DB.Where("item_name = ?", "Cips").First(&cips).Error)
	require.NoError(t, database.DB.Where("item_name = ?", "Sakız").First(&sakiz).Error)
	assert.Equal(t, 10, cips.Quantity)
	assert.Equal(t, 2, sakiz.Quantity)

	var orderCount int64
	database.DB.Model(&models.Checkout{}).Count(&orderCount)
	assert.EqualValues(t, 0, orderCount)
}

func TestAddCheckout_MissingProduct(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := userToken(t, cfg)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", token, billing([]map[string]any{
		{"itemName": "YokBöyleBirŞey", "quantity": 1, "price": 1.0},
	}))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	testutil.DecodeBody(t, resp, &body)
	assert.True(t, strings.Contains(body.Message, "YokBöyleBirŞey"))
}

func TestAddCheckout_EmptyCart(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := userToken(t, cfg)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", token, billing([]map[string]any{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddCheckout_RequiresAuth(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)

	resp := testutil.Do(t, app, http.MethodPost, "/api/checkout/add", "", billing([]map[string]any{
		{"itemName": "Cips", "quantity": 1, "price": 1.0},
	}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
