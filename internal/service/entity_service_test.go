package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/storage"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomerService_Phone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewCustomerService(repository.NewCustomerRepository(db), zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CustomerRequest{Name: "Phone Customer", Phone: "(650) 253-0000"})
	require.NoError(t, err)
	assert.Equal(t, "+16502530000", created.Phone)

	intl, err := svc.Create(ctx, &domain.CustomerRequest{Name: "London Office", Phone: " +44 20 7031 3000 "})
	require.NoError(t, err)
	assert.Equal(t, "+442070313000", intl.Phone)

	// Local numbers without a country code are stored as typed
	for _, phone := range []string{"9123 4567", "020 7946 0958", "555-1234", "ext. 12"} {
		local, err := svc.Create(ctx, &domain.CustomerRequest{Name: "Local " + phone, Phone: "  " + phone})
		require.NoError(t, err, phone)
		assert.Equal(t, phone, local.Phone)

		stored, err := svc.GetByID(ctx, mustParse(t, local.ID))
		require.NoError(t, err)
		assert.Equal(t, phone, stored.Phone)
	}

	noPhone, err := svc.Create(ctx, &domain.CustomerRequest{Name: "No Phone"})
	require.NoError(t, err)
	assert.Empty(t, noPhone.Phone)

	_, err = svc.GetByID(ctx, mustParse(t, "7a4c2f0e-1b3d-4e5f-8a9b-0c1d2e3f4a5b"))
	derr := requireKind(t, err, domain.KindNotFound)
	assert.Equal(t, "Customer not found", derr.Message)
}

func TestEmployeeService_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewEmployeeService(repository.NewEmployeeRepository(db), zap.NewNop())

	created, err := svc.Create(context.Background(), &domain.EmployeeRequest{Name: "Dana", EmployeeID: "EMP-900"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeSalary, created.PaymentType)
	assert.Equal(t, "active", created.Status)
}

func TestExpenseCategoryService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewExpenseCategoryService(repository.NewExpenseCategoryRepository(db), zap.NewNop())
	ctx := context.Background()

	all, err := svc.List(ctx)
	require.NoError(t, err)
	var fuel *domain.ExpenseCategoryDTO
	for i := range all {
		if all[i].Name == "Fuel" {
			fuel = &all[i]
		}
	}
	require.NotNil(t, fuel)
	assert.False(t, fuel.IsCustom)
	fuelID := mustParse(t, fuel.ID)

	t.Run("predefined cannot be renamed", func(t *testing.T) {
		_, err := svc.Update(ctx, fuelID, &domain.ExpenseCategoryRequest{Name: "Petrol"})
		requireKind(t, err, domain.KindValidation)
	})

	t.Run("predefined description can change", func(t *testing.T) {
		updated, err := svc.Update(ctx, fuelID, &domain.ExpenseCategoryRequest{Name: "Fuel", Description: "Diesel and petrol"})
		require.NoError(t, err)
		assert.Equal(t, "Diesel and petrol", updated.Description)
	})

	t.Run("predefined cannot be deleted", func(t *testing.T) {
		err := svc.Delete(ctx, fuelID)
		derr := requireKind(t, err, domain.KindConflict)
		assert.Equal(t, `Predefined category "Fuel" cannot be deleted`, derr.Message)
	})

	t.Run("custom lifecycle", func(t *testing.T) {
		created, err := svc.Create(ctx, &domain.ExpenseCategoryRequest{Name: " Tolls "})
		require.NoError(t, err)
		assert.True(t, created.IsCustom)
		assert.Equal(t, "Tolls", created.Name)

		_, err = svc.Create(ctx, &domain.ExpenseCategoryRequest{Name: "tolls"})
		requireKind(t, err, domain.KindValidation)

		require.NoError(t, svc.Delete(ctx, mustParse(t, created.ID)))
	})
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSettingsService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := service.NewSettingsService(repository.NewSettingsRepository(db), store, zap.NewNop())
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "QT-{YYYY}-{SEQ}", settings.QuoteNumberPattern)
	assert.False(t, settings.HasLogo)

	t.Run("partial update", func(t *testing.T) {
		updated, err := svc.Update(ctx, &domain.AdminSettingsRequest{
			CompanyName:  ptr("Fleet Co"),
			CompanyPhone: ptr("650 253 0000"),
			Currency:     ptr("eur"),
			ShowProfit:   ptr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Fleet Co", updated.CompanyName)
		assert.Equal(t, "+16502530000", updated.CompanyPhone)
		assert.Equal(t, "EUR", updated.Currency)
		assert.False(t, updated.ShowProfit)
		assert.True(t, updated.ShowRevenue)
		assert.Equal(t, "INV-{YYYY}-{SEQ}", updated.InvoiceNumberPattern)
	})

	t.Run("empty pattern rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, &domain.AdminSettingsRequest{QuoteNumberPattern: ptr("  ")})
		requireKind(t, err, domain.KindValidation)
	})

	t.Run("logo missing", func(t *testing.T) {
		_, err := svc.Logo(ctx)
		requireKind(t, err, domain.KindNotFound)
	})

	t.Run("logo is resized and stored as png", func(t *testing.T) {
		updated, err := svc.UploadLogo(ctx, bytes.NewReader(testPNG(t, 800, 200)))
		require.NoError(t, err)
		assert.True(t, updated.HasLogo)

		r, err := svc.Logo(ctx)
		require.NoError(t, err)
		defer r.Close()
		data, err := io.ReadAll(r)
		require.NoError(t, err)

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, service.LogoMaxWidth, cfg.Width)
		assert.Equal(t, 100, cfg.Height)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := svc.UploadLogo(ctx, bytes.NewReader([]byte("plain text")))
		requireKind(t, err, domain.KindValidation)
	})
}
