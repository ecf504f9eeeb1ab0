package handler_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/http/middleware"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func uploadLogo(t *testing.T, srv http.Handler, field string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "logo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAdminHandler_Settings(t *testing.T) {
	srv := newTestServer(t, testutil.SetupTestDB(t))

	rr := do(t, srv, http.MethodGet, "/api/admin/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	settings := decode[domain.AdminSettingsDTO](t, rr)
	assert.Equal(t, "QT-{YYYY}-{SEQ}", settings.QuoteNumberPattern)
	assert.False(t, settings.HasLogo)

	rr = do(t, srv, http.MethodPut, "/api/admin/settings", domain.AdminSettingsRequest{
		CompanyName: strPtr("Fleetline Ltd"),
		Currency:    strPtr("eur"),
		ShowProfit:  boolPtr(false),
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	settings = decode[domain.AdminSettingsDTO](t, rr)
	assert.Equal(t, "Fleetline Ltd", settings.CompanyName)
	assert.Equal(t, "EUR", settings.Currency)
	assert.False(t, settings.ShowProfit)
	assert.Equal(t, "INV-{YYYY}-{SEQ}", settings.InvoiceNumberPattern)

	rr = do(t, srv, http.MethodPut, "/api/admin/settings", domain.AdminSettingsRequest{QuoteNumberPattern: strPtr("  ")})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, apiError(t, rr).Errors, "quoteNumberPattern")
}

func TestAdminHandler_Logo(t *testing.T) {
	srv := newTestServer(t, testutil.SetupTestDB(t))

	rr := do(t, srv, http.MethodGet, "/api/admin/settings/logo", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = uploadLogo(t, srv, "logo", pngBytes(t, 40, 20))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decode[domain.AdminSettingsDTO](t, rr).HasLogo)

	rr = do(t, srv, http.MethodGet, "/api/admin/settings/logo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	img, err := png.Decode(rr.Body)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	t.Run("wrong field", func(t *testing.T) {
		rr := uploadLogo(t, srv, "file", pngBytes(t, 4, 4))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Missing logo file", apiError(t, rr).Detail)
	})

	t.Run("not an image", func(t *testing.T) {
		rr := uploadLogo(t, srv, "logo", []byte("plain text"))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, apiError(t, rr).Errors, "logo")
	})

	t.Run("too large", func(t *testing.T) {
		rr := uploadLogo(t, srv, "logo", bytes.Repeat([]byte{0}, 2<<20))
		require.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Equal(t, "File too large: maximum size is 1MB", apiError(t, rr).Detail)
	})
}

func TestAdminHandler_DemoDataAndPurge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := newTestServer(t, db)

	rr := do(t, srv, http.MethodPost, "/api/admin/demo-data", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	seeded := decode[domain.DemoDataResult](t, rr)
	assert.Positive(t, seeded.Customers)
	assert.Positive(t, seeded.Quotes)

	rr = do(t, srv, http.MethodGet, "/api/customers", nil)
	assert.Len(t, decode[[]domain.CustomerDTO](t, rr), seeded.Customers)

	rr = do(t, srv, http.MethodPost, "/api/admin/modules/delete", domain.DeleteModulesRequest{Modules: []string{"Customers"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	purged := decode[domain.ModuleDeletionResult](t, rr)
	assert.ElementsMatch(t, []string{"Quotations", "Invoices", "Customers"}, purged.Modules)

	rr = do(t, srv, http.MethodGet, "/api/customers", nil)
	assert.Empty(t, decode[[]domain.CustomerDTO](t, rr))
	rr = do(t, srv, http.MethodGet, "/api/quotes", nil)
	assert.Empty(t, decode[[]domain.QuoteDTO](t, rr))
	rr = do(t, srv, http.MethodGet, "/api/vendors", nil)
	assert.Len(t, decode[[]domain.VendorDTO](t, rr), seeded.Vendors)

	t.Run("unknown module", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/admin/modules/delete", domain.DeleteModulesRequest{Modules: []string{"Spaceships"}})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, `Unknown module "Spaceships"`, apiError(t, rr).Detail)
	})

	t.Run("no modules", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/admin/modules/delete", domain.DeleteModulesRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAdminHandler_Backup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestCustomer(t, db, "Backed Up")
	srv := newTestServer(t, db)

	rr := do(t, srv, http.MethodPost, "/api/admin/backup", nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	result := decode[domain.BackupResult](t, rr)
	assert.NotEmpty(t, result.Location)
	assert.Positive(t, result.SizeBytes)
}
