package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatReferenceError(t *testing.T) {
	t.Run("no references", func(t *testing.T) {
		assert.Equal(t, "", domain.FormatReferenceError("customer", nil))
	})

	t.Run("single reference", func(t *testing.T) {
		msg := domain.FormatReferenceError("customer", []domain.Reference{{Type: "Quote", Number: "QT-2025-001"}})
		assert.Equal(t, "Cannot delete customer as it is referenced in Quote QT-2025-001", msg)
	})

	t.Run("multiple references", func(t *testing.T) {
		msg := domain.FormatReferenceError("customer", []domain.Reference{
			{Type: "Quote", Number: "QT-2025-001"},
			{Type: "Invoice", Number: "INV-2025-004"},
		})
		assert.Equal(t, "Cannot delete customer as it is referenced in:\n- Quote QT-2025-001\n- Invoice INV-2025-004", msg)
	})
}

func TestNewReferenceError_Fallback(t *testing.T) {
	err := domain.NewReferenceError("vehicle", nil)
	assert.Equal(t, domain.KindConflict, err.Kind)
	assert.Equal(t, "Cannot delete vehicle as it is referenced in other records", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindNotFound, domain.KindOf(domain.NewNotFoundError("customer")))
	assert.Equal(t, domain.KindValidation, domain.KindOf(fmt.Errorf("wrapped: %w", domain.NewValidationError("name", "name is required"))))
	assert.Equal(t, domain.KindUnavailable, domain.KindOf(domain.ErrDatabaseUnavailable))
	assert.Equal(t, domain.KindInternal, domain.KindOf(errors.New("boom")))
	assert.Equal(t, domain.KindInternal, domain.KindOf(nil))
}

func TestNewNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "Purchase order not found", domain.NewNotFoundError("purchase order").Error())
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "a", domain.ResolveRef("a", &domain.RefInput{ID: "b"}))
	assert.Equal(t, "b", domain.ResolveRef("  ", &domain.RefInput{ID: " b "}))
	assert.Equal(t, "", domain.ResolveRef("", nil))

	item := domain.LineItemRequest{VehicleTypeID: "v1"}
	assert.Equal(t, "v1", item.VehicleRef())
}
