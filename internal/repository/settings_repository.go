package repository

import (
	"context"
	"fmt"

	"github.com/imanage/imanage-api/internal/domain"
	"gorm.io/gorm"
)

// DefaultAdminSettings is the row created on first read
func DefaultAdminSettings() domain.AdminSettings {
	return domain.AdminSettings{
		ID:                     domain.AdminSettingsID,
		Currency:               "USD",
		QuoteNumberPattern:     "QT-{YYYY}-{SEQ}",
		InvoiceNumberPattern:   "INV-{YYYY}-{SEQ}",
		PONumberPattern:        "PO-{YYYY}-{SEQ}",
		ShowRevenue:            true,
		ShowExpenses:           true,
		ShowProfit:             true,
		ShowMonthlyTrend:       true,
		ShowVehiclePerformance: true,
		ShowCustomerRevenue:    true,
		ShowCategoryBreakdown:  true,
	}
}

// SettingsRepository reads and writes the admin_settings singleton
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults when missing
func (r *SettingsRepository) Get(ctx context.Context) (*domain.AdminSettings, error) {
	db, err := Conn(ctx, r.db)
	if err != nil {
		return nil, err
	}

	settings := DefaultAdminSettings()
	err = db.Where("id = ?", domain.AdminSettingsID).FirstOrCreate(&settings).Error
	if err != nil {
		return nil, wrapError("get", "settings", err)
	}
	return &settings, nil
}

// Save writes every column of the singleton row
func (r *SettingsRepository) Save(ctx context.Context, settings *domain.AdminSettings) error {
	db, err := Conn(ctx, r.db)
	if err != nil {
		return err
	}
	settings.ID = domain.AdminSettingsID
	if err := db.Save(settings).Error; err != nil {
		return wrapError("save", "settings", err)
	}
	return nil
}

// SetLogoPath records where the current logo is stored
func (r *SettingsRepository) SetLogoPath(ctx context.Context, path string) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	db, err := Conn(ctx, r.db)
	if err != nil {
		return err
	}
	err = db.Model(&domain.AdminSettings{}).
		Where("id = ?", domain.AdminSettingsID).
		Update("logo_path", path).Error
	if err != nil {
		return fmt.Errorf("failed to update logo path: %w", err)
	}
	return nil
}
