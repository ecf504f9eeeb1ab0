package service_test

import (
	"context"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQuoteService_ItemLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewQuoteService(repository.NewQuoteRepository(db), newNumbering(db), zap.NewNop())
	customer := testutil.CreateTestCustomer(t, db, "Item Customer")
	vehicle := testutil.CreateTestVehicle(t, db)
	ctx := context.Background()

	quote, err := svc.Create(ctx, &domain.QuoteRequest{
		Number:   "QT-2025-001",
		Date:     "2025-03-01",
		Customer: &domain.RefInput{ID: customer.ID.String()},
		Items: []domain.LineItemRequest{
			{VehicleID: vehicle.ID.String(), Description: "Van", Quantity: 2, UnitPrice: 100, TaxPercent: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-31", quote.ValidUntil)
	assert.Equal(t, "USD", quote.Currency)
	assert.Equal(t, domain.QuoteStatusDraft, quote.Status)
	assert.Equal(t, 220.0, quote.Total)

	t.Run("add item appends with next serial", func(t *testing.T) {
		updated, err := svc.AddItem(ctx, mustParse(t, quote.ID), &domain.LineItemRequest{Description: "Fuel", Quantity: 1, UnitPrice: 50})
		require.NoError(t, err)
		require.Len(t, updated.Items, 2)
		assert.Equal(t, 2, updated.Items[1].SerialNumber)
		assert.Equal(t, 250.0, updated.SubTotal)
		assert.Equal(t, 20.0, updated.TotalTax)
		assert.Equal(t, 270.0, updated.Total)
	})

	t.Run("update item recomputes totals", func(t *testing.T) {
		updated, err := svc.UpdateItem(ctx, mustParse(t, quote.ID), 1, &domain.LineItemRequest{
			VehicleID: vehicle.ID.String(), Description: "Van", Quantity: 3, UnitPrice: 100, TaxPercent: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, updated.Items[0].GrossAmount)
		assert.Equal(t, 30.0, updated.Items[0].LineTaxAmount)
		assert.Equal(t, 380.0, updated.Total)
		require.NotNil(t, updated.Items[0].VehicleID)
		assert.Equal(t, vehicle.ID.String(), *updated.Items[0].VehicleID)
	})

	t.Run("remove item renumbers", func(t *testing.T) {
		updated, err := svc.RemoveItem(ctx, mustParse(t, quote.ID), 1)
		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, 1, updated.Items[0].SerialNumber)
		assert.Equal(t, "Fuel", updated.Items[0].Description)
		assert.Equal(t, 50.0, updated.Total)
	})

	t.Run("out of range index", func(t *testing.T) {
		_, err := svc.RemoveItem(ctx, mustParse(t, quote.ID), 5)
		derr := requireKind(t, err, domain.KindNotFound)
		assert.Equal(t, "Item 5 not found", derr.Message)
	})

	t.Run("duplicate number", func(t *testing.T) {
		_, err := svc.Create(ctx, &domain.QuoteRequest{Number: "QT-2025-001", CustomerID: customer.ID.String()})
		derr := requireKind(t, err, domain.KindValidation)
		assert.Equal(t, `Quote number "QT-2025-001" already exists`, derr.Message)
	})

	t.Run("next number skips consumed", func(t *testing.T) {
		next, err := svc.NextNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, "QT-2025-002", next.Number)
	})
}

func TestQuoteService_RequiresCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewQuoteService(repository.NewQuoteRepository(db), newNumbering(db), zap.NewNop())

	_, err := svc.Create(context.Background(), &domain.QuoteRequest{Number: "QT-X"})
	requireKind(t, err, domain.KindValidation)

	_, err = svc.Create(context.Background(), &domain.QuoteRequest{Number: "QT-X", CustomerID: "not-a-uuid"})
	requireKind(t, err, domain.KindValidation)
}

func TestInvoiceService_TaxOverride(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewInvoiceService(repository.NewInvoiceRepository(db), newNumbering(db), zap.NewNop())
	customer := testutil.CreateTestCustomer(t, db, "Tax Customer")
	ctx := context.Background()

	items := []domain.LineItemRequest{{Description: "Rental", Quantity: 2, UnitPrice: 100, TaxPercent: 10}}

	created, err := svc.Create(ctx, &domain.InvoiceRequest{
		Number:     "INV-2025-001",
		Date:       "2025-03-01",
		CustomerID: customer.ID.String(),
		QuoteID:    "",
		Tax:        ptr(5.0),
		Items:      items,
	})
	require.NoError(t, err)
	assert.True(t, created.TaxOverridden)
	assert.Equal(t, 200.0, created.SubTotal)
	assert.Equal(t, 5.0, created.Tax)
	assert.Equal(t, 205.0, created.Total)
	assert.Equal(t, "2025-03-31", created.DueDate)
	assert.Nil(t, created.QuoteID)
	assert.Nil(t, created.VendorID)
	id := mustParse(t, created.ID)

	t.Run("item change clears override", func(t *testing.T) {
		updated, err := svc.AddItem(ctx, id, &domain.LineItemRequest{Description: "Fee", Quantity: 1, UnitPrice: 50, TaxPercent: 10})
		require.NoError(t, err)
		assert.False(t, updated.TaxOverridden)
		assert.Equal(t, 25.0, updated.Tax)
		assert.Equal(t, 275.0, updated.Total)
	})

	t.Run("update without tax uses line taxes", func(t *testing.T) {
		updated, err := svc.Update(ctx, id, &domain.InvoiceRequest{
			Number: "INV-2025-001", CustomerID: customer.ID.String(), Items: items, AmountReceived: 50,
		})
		require.NoError(t, err)
		assert.False(t, updated.TaxOverridden)
		assert.Equal(t, 20.0, updated.Tax)
		assert.Equal(t, 220.0, updated.Total)
		assert.Equal(t, 170.0, updated.BalanceDue)
	})

	t.Run("negative amount received", func(t *testing.T) {
		_, err := svc.Update(ctx, id, &domain.InvoiceRequest{
			Number: "INV-2025-001", CustomerID: customer.ID.String(), AmountReceived: -1,
		})
		requireKind(t, err, domain.KindValidation)
	})

	t.Run("unknown vehicle on a line", func(t *testing.T) {
		_, err := svc.AddItem(ctx, id, &domain.LineItemRequest{VehicleID: "5f0c1a4e-8d2b-4e8f-9a51-0d6b1f3c2a77", Quantity: 1, UnitPrice: 1})
		derr := requireKind(t, err, domain.KindValidation)
		assert.Contains(t, derr.Message, "Item 2 references vehicle")
	})
}

func TestPurchaseOrderService_DeliveryDateDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewPurchaseOrderService(repository.NewPurchaseOrderRepository(db), newNumbering(db), zap.NewNop())
	vendor := testutil.CreateTestVendor(t, db, "Parts Vendor")

	po, err := svc.Create(context.Background(), &domain.PurchaseOrderRequest{
		Number:   "PO-2025-001",
		Date:     "2025-03-01",
		VendorID: vendor.ID.String(),
		Items:    []domain.LineItemRequest{{Description: "Tyres", Quantity: 4, UnitPrice: 80}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", po.DeliveryDate)
	assert.Equal(t, 320.0, po.Total)
	assert.Equal(t, "Parts Vendor", po.VendorName)
}
