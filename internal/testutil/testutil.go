// Package testutil: testlerin ortak kurulumları. Veritabanı olarak
// bellek içi sqlite kullanılır, şema production ile aynı migrate
// listesinden kurulur.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"envanter-backend/internal/config"
	"envanter-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB: her test kendi taze bellek içi veritabanını alır ve global
// bağlantı ona yönlendirilir. Tek bağlantı sınırı, :memory:'nin her
// bağlantıda ayrı veritabanı açmasını engeller.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	database.DB = db
	return db
}

func TestConfig() *config.Config {
	return &config.Config{
		HTTPPort:    "0",
		JWTSecret:   "test-secret-test-secret-test-secret!!",
		CORSOrigins: "http://localhost",
	}
}

// Do: JSON gövdeli istek atar, opsiyonel bearer token ekler.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody: yanıt gövdesini verilen hedefe çözer.
func DecodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
