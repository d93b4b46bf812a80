package product_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/server"
	"envanter-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	u := models.User{Username: "admin", Email: "admin@test.local", PasswordHash: "x", IsAdmin: true, Role: models.RoleNone}
	require.NoError(t, database.DB.Create(&u).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, &u)
	require.NoError(t, err)
	return token
}

type productBody struct {
	ID           uint     `json:"id"`
	Category     string   `json:"category"`
	SupplierName string   `json:"supplierName"`
	ItemName     string   `json:"itemName"`
	Price        float64  `json:"price"`
	ItemImage    string   `json:"itemImage"`
	Quantity     int      `json:"quantity"`
	PurchaseDate string   `json:"purchaseDate"`
	ExpiryDate   string   `json:"expiryDate"`
	ItemCodes    []string `json:"itemCodes"`
	Description  string   `json:"description"`
}

func TestProduct_CreateFetchRoundTrip(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := adminToken(t, cfg)

	create := map[string]any{
		"category":     "dairy",
		"supplierName": "Acme Foods",
		"itemName":     "Peynir",
		"price":        12.75,
		"itemImage":    "https://img.test/peynir.png",
		"quantity":     8,
		"purchaseDate": "2026-08-01",
		"expiryDate":   "2026-11-15",
		"itemCodes":    []string{"PY-1", "PY-2"},
		"description":  "Tam yağlı",
	}

	resp := testutil.Do(t, app, http.MethodPost, "/api/product/add", token, create)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created productBody
	testutil.DecodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/product/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched productBody
	testutil.DecodeBody(t, resp, &fetched)

	// Oluştururken verilen her alan okumada birebir dönmeli
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "dairy", fetched.Category)
	assert.Equal(t, "Acme Foods", fetched.SupplierName)
	assert.Equal(t, "Peynir", fetched.ItemName)
	assert.Equal(t, 12.75, fetched.Price)
	assert.Equal(t, "https://img.test/peynir.png", fetched.ItemImage)
	assert.Equal(t, 8, fetched.Quantity)
	assert.Equal(t, "2026-08-01", fetched.PurchaseDate)
	assert.Equal(t, "2026-11-15", fetched.ExpiryDate)
	assert.Equal(t, []string{"PY-1", "PY-2"}, fetched.ItemCodes)
	assert.Equal(t, "Tam yağlı", fetched.Description)
}

func TestProduct_GetNotFound(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)

	resp := testutil.Do(t, app, http.MethodGet, "/api/product/123", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProduct_AddRequiresAdmin(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)

	u := models.User{Username: "normal", Email: "normal@test.local", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, database.DB.Create(&u).Error)
	token, err := auth.GenerateToken(cfg.JWTSecret, &u)
	require.NoError(t, err)

	resp := testutil.Do(t, app, http.MethodPost, "/api/product/add", token,
		map[string]any{"itemName": "Peynir"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProduct_UpdatePartial(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := adminToken(t, cfg)

	p := models.Product{ItemName: "Peynir", Category: "dairy", Price: 10, Quantity: 5}
	require.NoError(t, database.DB.Create(&p).Error)

	resp := testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/product/update/%d", p.ID), token,
		map[string]any{"price": 11.5})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var after models.Product
	require.NoError(t, database.DB.First(&after, p.ID).Error)
	assert.Equal(t, 11.5, after.Price)
	// Gönderilmeyen alanlar olduğu gibi kalır
	assert.Equal(t, 5, after.Quantity)
	assert.Equal(t, "Peynir", after.ItemName)
}

func TestExpiringAndExpiredProducts(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)

	now := time.Now()
	fresh := models.Product{ItemName: "Taze", ExpiryDate: now.AddDate(1, 0, 0)}
	soon := models.Product{ItemName: "Yakında", ExpiryDate: now.AddDate(0, 0, 20)}
	old := models.Product{ItemName: "Geçmiş", ExpiryDate: now.AddDate(0, 0, -3)}
	require.NoError(t, database.DB.Create(&fresh).Error)
	require.NoError(t, database.DB.Create(&soon).Error)
	require.NoError(t, database.DB.Create(&old).Error)

	// 90 günlük pencere sadece "Yakında"yı içerir
	resp := testutil.Do(t, app, http.MethodGet, "/api/product/expiring?days=90", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var expiring struct {
		Products []struct {
			ItemName        string `json:"itemName"`
			DiscountPercent int    `json:"discountPercent"`
		} `json:"products"`
	}
	testutil.DecodeBody(t, resp, &expiring)
	require.Len(t, expiring.Products, 1)
	assert.Equal(t, "Yakında", expiring.Products[0].ItemName)
	// 20 gün kaldı -> %30 indirim katmanı
	assert.Equal(t, 30, expiring.Products[0].DiscountPercent)

	resp = testutil.Do(t, app, http.MethodGet, "/api/product/expired", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var expired struct {
		Products []struct {
			ItemName string `json:"itemName"`
		} `json:"products"`
	}
	testutil.DecodeBody(t, resp, &expired)
	require.Len(t, expired.Products, 1)
	assert.Equal(t, "Geçmiş", expired.Products[0].ItemName)
}
