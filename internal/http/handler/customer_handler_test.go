package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/http/handler"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomerHandler_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	srv := newTestServer(t, db)

	rr := do(t, srv, http.MethodPost, "/api/customers", domain.CustomerRequest{
		Name:  "Acme Logistics",
		Email: "ops@acme.example",
		Phone: "650 253 0000",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[domain.CustomerDTO](t, rr)
	assert.Equal(t, "/api/customers/"+created.ID, rr.Header().Get("Location"))
	assert.Equal(t, "+16502530000", created.Phone)

	t.Run("get", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/api/customers/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Acme Logistics", decode[domain.CustomerDTO](t, rr).Name)
	})

	t.Run("list with search", func(t *testing.T) {
		testutil.CreateTestCustomer(t, db, "Zenith Travel")

		rr := do(t, srv, http.MethodGet, "/api/customers", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode[[]domain.CustomerDTO](t, rr), 2)

		rr = do(t, srv, http.MethodGet, "/api/customers?search=acme", nil)
		list := decode[[]domain.CustomerDTO](t, rr)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		rr := do(t, srv, http.MethodPut, "/api/customers/"+created.ID, domain.CustomerRequest{Name: "Acme Freight"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Acme Freight", decode[domain.CustomerDTO](t, rr).Name)
	})

	t.Run("delete blocked by quote", func(t *testing.T) {
		testutil.CreateTestQuote(t, db, uuid.MustParse(created.ID), "QT-2025-007", nil)

		rr := do(t, srv, http.MethodDelete, "/api/customers/"+created.ID, nil)
		require.Equal(t, http.StatusConflict, rr.Code)
		body := apiError(t, rr)
		assert.Equal(t, domain.ErrorTypeConflict, body.Type)
		assert.Equal(t, "Cannot delete customer as it is referenced in Quote QT-2025-007", body.Detail)
		assert.Equal(t, []domain.Reference{{Type: "Quote", Number: "QT-2025-007"}}, body.References)
	})

	t.Run("delete", func(t *testing.T) {
		other := testutil.CreateTestCustomer(t, db, "Short Lived")

		rr := do(t, srv, http.MethodDelete, "/api/customers/"+other.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())

		rr = do(t, srv, http.MethodGet, "/api/customers/"+other.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCustomerHandler_Errors(t *testing.T) {
	srv := newTestServer(t, testutil.SetupTestDB(t))

	t.Run("not found", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/api/customers/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusNotFound, rr.Code)
		body := apiError(t, rr)
		assert.Equal(t, domain.ErrorTypeNotFound, body.Type)
		assert.Equal(t, "Customer not found", body.Detail)
	})

	t.Run("update missing", func(t *testing.T) {
		rr := do(t, srv, http.MethodPut, "/api/customers/"+uuid.NewString(), domain.CustomerRequest{Name: "Ghost"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/customers", map[string]string{"email": "x@example.com"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		body := apiError(t, rr)
		assert.Equal(t, domain.ErrorTypeValidation, body.Type)
		assert.Equal(t, "name is required", body.Errors["name"])
	})

	t.Run("blank name", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/customers", domain.CustomerRequest{Name: "   "})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, apiError(t, rr).Errors, "name")
	})

	t.Run("local phone kept as entered", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/customers", domain.CustomerRequest{Name: "Corner Shop", Phone: "9123 4567"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.Equal(t, "9123 4567", decode[domain.CustomerDTO](t, rr).Phone)
	})

	t.Run("invalid json", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/customers", "{not json")
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request body", apiError(t, rr).Detail)
	})

	t.Run("empty body", func(t *testing.T) {
		rr := do(t, srv, http.MethodPost, "/api/customers", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Request body is required", apiError(t, rr).Detail)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := do(t, srv, http.MethodGet, "/api/customers/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid id", apiError(t, rr).Detail)
	})
}

// Handlers also work without the router when the chi route context is set by hand
func TestCustomerHandler_GetByIDWithRouteContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handler.NewCustomerHandler(service.NewCustomerService(repository.NewCustomerRepository(db), zap.NewNop()), zap.NewNop())
	customer := testutil.CreateTestCustomer(t, db, "Direct Call")

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", customer.ID.String())
	req := httptest.NewRequest(http.MethodGet, "/customers/"+customer.ID.String(), nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	h.GetByID(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Direct Call", decode[domain.CustomerDTO](t, rr).Name)
}
