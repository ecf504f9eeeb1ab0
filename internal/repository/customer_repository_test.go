package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCustomerRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	customer := &domain.Customer{
		Name:    "Acme Logistics",
		Company: "Acme Logistics LLC",
		Email:   "ops@acme.example.com",
		Phone:   "+16502530001",
	}

	err := repo.Create(context.Background(), customer, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.False(t, customer.CreatedAt.IsZero())

	found, err := repo.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme Logistics", found.Name)
	assert.Equal(t, "ops@acme.example.com", found.Email)
}

func TestCustomerRepository_CreateRequiresName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	err := repo.Create(context.Background(), &domain.Customer{Name: "   "}, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "Customer name is required", err.Error())
}

func TestCustomerRepository_GetByIDMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	found, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestCustomerRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	testutil.CreateTestCustomer(t, db, "Zeta Freight")
	testutil.CreateTestCustomer(t, db, "Alpha Movers")
	testutil.CreateTestCustomer(t, db, "Beta Rentals")

	t.Run("ordered by name", func(t *testing.T) {
		customers, err := repo.List(context.Background(), repository.ListOptions{})
		require.NoError(t, err)
		require.Len(t, customers, 3)
		assert.Equal(t, "Alpha Movers", customers[0].Name)
		assert.Equal(t, "Zeta Freight", customers[2].Name)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		customers, err := repo.List(context.Background(), repository.ListOptions{Search: "RENTAL"})
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Beta Rentals", customers[0].Name)
	})
}

func TestCustomerRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	customer := testutil.CreateTestCustomer(t, db, "Before")

	customer.Name = "After"
	customer.Notes = ""
	require.NoError(t, repo.Update(context.Background(), customer, nil))

	found, err := repo.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "After", found.Name)
	assert.Equal(t, customer.CreatedAt.Unix(), found.CreatedAt.Unix())
}

func TestCustomerRepository_UpdateMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	customer := &domain.Customer{Name: "Ghost"}
	customer.ID = uuid.New()
	err := repo.Update(context.Background(), customer, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "Customer not found", err.Error())
}

func TestCustomerRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	t.Run("unreferenced customer is removed", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Lonely Customer")

		require.NoError(t, repo.Delete(context.Background(), customer.ID))

		found, err := repo.GetByID(context.Background(), customer.ID)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("referenced by a quote and an invoice", func(t *testing.T) {
		customer := testutil.CreateTestCustomer(t, db, "Busy Customer")
		testutil.CreateTestQuote(t, db, customer.ID, "QT-2025-001", nil)
		testutil.CreateTestInvoice(t, db, customer.ID, "INV-2025-007")

		err := repo.Delete(context.Background(), customer.ID)
		require.Error(t, err)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
		assert.Contains(t, err.Error(), "QT-2025-001")
		assert.Contains(t, err.Error(), "INV-2025-007")
		assert.Equal(t, "Cannot delete customer as it is referenced in:\n- Quote QT-2025-001\n- Invoice INV-2025-007", err.Error())

		derr, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Len(t, derr.References, 2)

		found, err := repo.GetByID(context.Background(), customer.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("missing customer", func(t *testing.T) {
		err := repo.Delete(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})
}

func TestRepository_DeleteFallsBackOnForeignKeyViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	customer := testutil.CreateTestCustomer(t, db, "Guarded by schema")
	testutil.CreateTestQuote(t, db, customer.ID, "QT-FK-001", nil)

	// No dependent queries, so only the database constraint stops the delete
	repo := repository.New(db, repository.Spec[domain.Customer]{
		Entity: "customer",
		Table:  "customers",
	})

	err := repo.Delete(context.Background(), customer.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "Cannot delete customer as it is referenced in other records", err.Error())
}

func TestRepository_WriteForeignKeyViolationIsConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)

	// No foreign key pre-check, so the insert reaches the schema constraint
	repo := repository.New(db, repository.Spec[domain.Quote]{
		Entity: "quote",
		Table:  "quotes",
	})

	err := repo.Create(context.Background(), newQuote(uuid.New(), "QT-FK-002"), nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "The quote references a record that does not exist", err.Error())
}

func TestReplaceChildren_ForeignKeyViolationIsConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	items, _ := quoteItems(domain.LineItemRequest{Description: "Orphan", Quantity: 1, UnitPrice: 10})
	items[0].QuoteID = uuid.New()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repository.ReplaceChildren(tx, "quote_id", items[0].QuoteID, items)
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "An item references a record that does not exist", err.Error())
}

func TestRepository_NilHandleIsUnavailable(t *testing.T) {
	repo := repository.NewCustomerRepository(nil)

	_, err := repo.List(context.Background(), repository.ListOptions{})
	require.Error(t, err)
	assert.Equal(t, domain.KindUnavailable, domain.KindOf(err))
	assert.Equal(t, "Database is not available", err.Error())

	found, err := repo.GetByID(context.Background(), uuid.New())
	assert.Nil(t, found)
	assert.Equal(t, domain.KindUnavailable, domain.KindOf(err))
}
