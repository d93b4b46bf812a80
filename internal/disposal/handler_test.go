package disposal_test

import (
	"net/http"
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

func managerToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	u := models.User{Username: "depocu", Email: "depocu@test.local", PasswordHash: "x", Role: models.RoleInventoryManager}
	require.NoError(t, database.DB.Create(&u).Error)

	token, err := auth.GenerateToken(cfg.JWTSecret, &u)
	require.NoError(t, err)
	return token
}

func disposalBody(codes []string) map[string]any {
	return map[string]any{
		"itemName":  "Süt",
		"category":  "dairy",
		"itemCodes": codes,
		"location":  "Depo A",
	}
}

func TestAddDisposal_RemovesCodesFromProduct(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	p := models.Product{
		Category:  "dairy",
		ItemName:  "Süt",
		Price:     2.5,
		Quantity:  2,
		ItemCodes: []string{"X1", "X2"},
	}
	require.NoError(t, database.DB.Create(&p).Error)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"X1"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var after models.Product
	require.NoError(t, database.DB.First(&after, p.ID).Error)
	assert.Equal(t, []string{"X2"}, after.ItemCodes)

	// Kolon hâlâ geçerli JSON: ürün API üzerinden okunabilir durumda
	resp = testutil.Do(t, app, http.MethodGet, "/api/product/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		ItemCodes []string `json:"itemCodes"`
	}
	testutil.DecodeBody(t, resp, &detail)
	assert.Equal(t, []string{"X2"}, detail.ItemCodes)

	var entry models.Disposal
	require.NoError(t, database.DB.First(&entry).Error)
	assert.Equal(t, []string{"X1"}, entry.ItemCodes)
	assert.Equal(t, "Depo A", entry.Location)
}

func TestAddDisposal_UnknownCode(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"YOK-1"}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Disposal{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestAddDisposal_DoubleDisposalFails(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	p := models.Product{ItemName: "Süt", Category: "dairy", Quantity: 2, ItemCodes: []string{"X1", "X2"}}
	require.NoError(t, database.DB.Create(&p).Error)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"X1"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Kod artık hiçbir üründe yok
	resp = testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"X1"}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Disposal{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddDisposal_LastCodeKeepsProduct(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	p := models.Product{ItemName: "Süt", Category: "dairy", Quantity: 1, ItemCodes: []string{"X1"}}
	require.NoError(t, database.DB.Create(&p).Error)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"X1"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Kod listesi boşaldı ama ürün silinmedi
	var after models.Product
	require.NoError(t, database.DB.First(&after, p.ID).Error)
	assert.Empty(t, after.ItemCodes)
}

func TestAddDisposal_MultipleCodesAtOnce(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	p := models.Product{ItemName: "Süt", Category: "dairy", Quantity: 3, ItemCodes: []string{"X1", "X2", "X3"}}
	require.NoError(t, database.DB.Create(&p).Error)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"X1", "X3"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var after models.Product
	require.NoError(t, database.DB.First(&after, p.ID).Error)
	assert.Equal(t, []string{"X2"}, after.ItemCodes)
}

func TestAddDisposal_WildcardCharsInCodeMatchLiterally(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)
	token := managerToken(t, cfg)

	// "A_1" kodundaki alt çizgi LIKE jokeri olarak yorumlanırsa
	// yanlışlıkla "AX1" taşıyan ürünü bulur
	decoy := models.Product{ItemName: "Ayran", Category: "dairy", Quantity: 1, ItemCodes: []string{"AX1"}}
	require.NoError(t, database.DB.Create(&decoy).Error)

	target := models.Product{ItemName: "Süt", Category: "dairy", Quantity: 1, ItemCodes: []string{"A_1"}}
	require.NoError(t, database.DB.Create(&target).Error)

	resp := testutil.Do(t, app, http.MethodPost, "/api/disposal/add", token, disposalBody([]string{"A_1"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var decoyAfter, targetAfter models.Product
	require.NoError(t, database.DB.First(&decoyAfter, decoy.ID).Error)
	require.NoError(t, database.DB.First(&targetAfter, target.ID).Error)
	assert.Equal(t, []string{"AX1"}, decoyAfter.ItemCodes)
	assert.Empty(t, targetAfter.ItemCodes)
}

func TestDisposalList_NewestFirst(t *testing.T) {
	testutil.SetupDB(t)
	cfg := testutil.TestConfig()
	app := server.New(cfg)

	require.NoError(t, database.DB.Create(&models.Disposal{ItemName: "A", Category: "c", Location: "l"}).Error)
	require.NoError(t, database.DB.Create(&models.Disposal{ItemName: "B", Category: "c", Location: "l"}).Error)

	resp := testutil.Do(t, app, http.MethodGet, "/api/disposal/all", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		DisposalItems []struct {
			ItemName string `json:"itemName"`
		} `json:"disposalItems"`
	}
	testutil.DecodeBody(t, resp, &body)
	require.Len(t, body.DisposalItems, 2)
	assert.Equal(t, "B", body.DisposalItems[0].ItemName)
}
