package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// NumberSequenceRepository tracks the last issued sequence per document type
// and year. Writes are serialized by the single SQLite connection.
type NumberSequenceRepository struct {
	db *gorm.DB
}

// NewNumberSequenceRepository creates a new NumberSequenceRepository
func NewNumberSequenceRepository(db *gorm.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// GetCurrentSequence retrieves the current sequence value without incrementing.
// Returns 0 if no sequence exists for the type/year.
func (r *NumberSequenceRepository) GetCurrentSequence(ctx context.Context, docType domain.DocumentType, year int) (int, error) {
	db, err := Conn(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var seq domain.NumberSequence
	result := db.Where("document_type = ? AND year = ?", docType, year).First(&seq)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get number sequence: %w", result.Error)
	}
	return seq.LastSequence, nil
}

// SetSequence raises the sequence to value. Lower values are ignored so the
// sequence never moves backwards.
func (r *NumberSequenceRepository) SetSequence(ctx context.Context, docType domain.DocumentType, year int, value int) error {
	db, err := Conn(ctx, r.db)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var seq domain.NumberSequence
		result := tx.Where("document_type = ? AND year = ?", docType, year).First(&seq)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			seq = domain.NumberSequence{
				DocumentType: docType,
				Year:         year,
				LastSequence: value,
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create number sequence: %w", err)
			}
			return nil
		}
		if result.Error != nil {
			return fmt.Errorf("failed to get number sequence: %w", result.Error)
		}

		if value > seq.LastSequence {
			err := tx.Model(&domain.NumberSequence{}).
				Where("document_type = ? AND year = ?", docType, year).
				Updates(map[string]interface{}{
					"last_sequence": value,
					"updated_at":    time.Now().UTC(),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update number sequence: %w", err)
			}
		}
		return nil
	})
}

// NumberExists reports whether a document of docType already uses number
func (r *NumberSequenceRepository) NumberExists(ctx context.Context, docType domain.DocumentType, number string) (bool, error) {
	db, err := Conn(ctx, r.db)
	if err != nil {
		return false, err
	}
	table, ok := documentTables[docType]
	if !ok {
		return false, fmt.Errorf("unknown document type %q", docType)
	}
	var count int64
	if err := db.Table(table).Where("number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check document number: %w", err)
	}
	return count > 0, nil
}

var documentTables = map[domain.DocumentType]string{
	domain.DocumentTypeQuote:         "quotes",
	domain.DocumentTypeInvoice:       "invoices",
	domain.DocumentTypePurchaseOrder: "purchase_orders",
}
