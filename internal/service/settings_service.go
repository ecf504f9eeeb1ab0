package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/storage"
	"go.uber.org/zap"
)

const (
	// LogoKey is the storage key of the company logo
	LogoKey = "branding/logo.png"
	// LogoMaxWidth is the width logos are scaled down to
	LogoMaxWidth = 400
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	storage      storage.Storage
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, store storage.Storage, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		storage:      store,
		logger:       logger,
	}
}

// Get returns the settings, creating the default row on first use
func (s *SettingsService) Get(ctx context.Context) (*domain.AdminSettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	dto := mapper.ToAdminSettingsDTO(settings)
	return &dto, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Update applies the non-nil fields of req
func (s *SettingsService) Update(ctx context.Context, req *domain.AdminSettingsRequest) (*domain.AdminSettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if req.CompanyPhone != nil {
		phone := normalizePhone(*req.CompanyPhone)
		req.CompanyPhone = &phone
	}
	for field, pattern := range map[string]*string{
		"quoteNumberPattern":   req.QuoteNumberPattern,
		"invoiceNumberPattern": req.InvoiceNumberPattern,
		"poNumberPattern":      req.PONumberPattern,
	} {
		if pattern != nil && strings.TrimSpace(*pattern) == "" {
			return nil, domain.NewValidationError(field, "Numbering pattern cannot be empty")
		}
	}

	setString(&settings.CompanyName, req.CompanyName)
	setString(&settings.CompanyAddress, req.CompanyAddress)
	setString(&settings.CompanyEmail, req.CompanyEmail)
	setString(&settings.CompanyPhone, req.CompanyPhone)
	setString(&settings.TaxID, req.TaxID)
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		settings.Currency = currency
	}
	setString(&settings.QuoteNumberPattern, req.QuoteNumberPattern)
	setString(&settings.InvoiceNumberPattern, req.InvoiceNumberPattern)
	setString(&settings.PONumberPattern, req.PONumberPattern)
	setBool(&settings.ShowRevenue, req.ShowRevenue)
	setBool(&settings.ShowExpenses, req.ShowExpenses)
	setBool(&settings.ShowProfit, req.ShowProfit)
	setBool(&settings.ShowMonthlyTrend, req.ShowMonthlyTrend)
	setBool(&settings.ShowVehiclePerformance, req.ShowVehiclePerformance)
	setBool(&settings.ShowCustomerRevenue, req.ShowCustomerRevenue)
	setBool(&settings.ShowCategoryBreakdown, req.ShowCategoryBreakdown)

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("Admin settings updated")
	dto := mapper.ToAdminSettingsDTO(settings)
	return &dto, nil
}

// UploadLogo decodes an image, scales it down to LogoMaxWidth and stores it
// as PNG
func (s *SettingsService) UploadLogo(ctx context.Context, data io.Reader) (*domain.AdminSettingsDTO, error) {
	img, err := imaging.Decode(data, imaging.AutoOrientation(true))
	if err != nil {
		return nil, domain.NewValidationError("logo", "Logo must be a PNG, JPEG, GIF, BMP or TIFF image")
	}
	if img.Bounds().Dx() > LogoMaxWidth {
		img = imaging.Resize(img, LogoMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode logo: %w", err)
	}

	path, size, err := s.storage.Upload(ctx, LogoKey, "image/png", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to store logo: %w", err)
	}
	if err := s.settingsRepo.SetLogoPath(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to record logo: %w", err)
	}

	s.logger.Info("Company logo uploaded",
		zap.String("path", path),
		zap.Int64("size", size),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return s.Get(ctx)
}

// Logo opens the stored logo. The caller closes the reader.
func (s *SettingsService) Logo(ctx context.Context) (io.ReadCloser, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.LogoPath == "" {
		return nil, domain.NewNotFoundError("logo")
	}

	r, err := s.storage.Download(ctx, settings.LogoPath)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, domain.NewNotFoundError("logo")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load logo: %w", err)
	}
	return r, nil
}
