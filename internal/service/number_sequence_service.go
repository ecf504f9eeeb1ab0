package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"go.uber.org/zap"
)

// maxSuggestAttempts bounds the search for a free number when documents were
// numbered by hand past the stored sequence
const maxSuggestAttempts = 1000

// NumberSequenceService suggests document numbers from the admin numbering
// patterns. Numbers stay caller-supplied; a document created with a number
// matching its pattern advances the sequence for that type and year.
//
// Pattern tokens: {YYYY} four-digit year, {YY} two-digit year, {MM} month,
// {SEQ} sequence zero-padded to 3 digits.
// Example: "INV-{YYYY}-{SEQ}" renders "INV-2025-007".
type NumberSequenceService struct {
	repo         *repository.NumberSequenceRepository
	settingsRepo *repository.SettingsRepository
	now          func() time.Time
	logger       *zap.Logger
}

// NewNumberSequenceService creates a new NumberSequenceService
func NewNumberSequenceService(
	repo *repository.NumberSequenceRepository,
	settingsRepo *repository.SettingsRepository,
	logger *zap.Logger,
) *NumberSequenceService {
	return &NumberSequenceService{
		repo:         repo,
		settingsRepo: settingsRepo,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// SetClock replaces the time source, used by tests
func (s *NumberSequenceService) SetClock(now func() time.Time) {
	s.now = now
}

// RenderNumber fills the pattern tokens. A pattern without {SEQ} gets
// "-{SEQ}" appended so rendered numbers remain distinct.
func RenderNumber(pattern string, t time.Time, seq int) string {
	pattern = withSequence(pattern)
	r := strings.NewReplacer(
		"{YYYY}", fmt.Sprintf("%04d", t.Year()),
		"{YY}", fmt.Sprintf("%02d", t.Year()%100),
		"{MM}", fmt.Sprintf("%02d", int(t.Month())),
		"{SEQ}", fmt.Sprintf("%03d", seq),
	)
	return r.Replace(pattern)
}

// ParseSequence extracts the sequence from number when it matches pattern
// rendered for t's year and month
func ParseSequence(pattern string, t time.Time, number string) (int, bool) {
	pattern = withSequence(pattern)
	quoted := regexp.QuoteMeta(pattern)
	expr := strings.NewReplacer(
		regexp.QuoteMeta("{YYYY}"), fmt.Sprintf("%04d", t.Year()),
		regexp.QuoteMeta("{YY}"), fmt.Sprintf("%02d", t.Year()%100),
		regexp.QuoteMeta("{MM}"), fmt.Sprintf("%02d", int(t.Month())),
		regexp.QuoteMeta("{SEQ}"), `(\d+)`,
	).Replace(quoted)

	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return 0, false
	}
	m := re.FindStringSubmatch(strings.TrimSpace(number))
	if m == nil {
		return 0, false
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return seq, true
}

func withSequence(pattern string) string {
	if strings.TrimSpace(pattern) == "" {
		return "{SEQ}"
	}
	if !strings.Contains(pattern, "{SEQ}") {
		return pattern + "-{SEQ}"
	}
	return pattern
}

func (s *NumberSequenceService) pattern(ctx context.Context, docType domain.DocumentType) (string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	switch docType {
	case domain.DocumentTypeQuote:
		return settings.QuoteNumberPattern, nil
	case domain.DocumentTypeInvoice:
		return settings.InvoiceNumberPattern, nil
	case domain.DocumentTypePurchaseOrder:
		return settings.PONumberPattern, nil
	}
	return "", domain.NewValidationError("documentType", fmt.Sprintf("Unknown document type %q", docType))
}

// Suggest returns the next free number for docType without reserving it
func (s *NumberSequenceService) Suggest(ctx context.Context, docType domain.DocumentType) (*domain.NextNumberDTO, error) {
	pattern, err := s.pattern(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("failed to load numbering pattern: %w", err)
	}

	now := s.now()
	seq, err := s.repo.GetCurrentSequence(ctx, docType, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get number sequence: %w", err)
	}

	for i := 0; i < maxSuggestAttempts; i++ {
		seq++
		number := RenderNumber(pattern, now, seq)
		taken, err := s.repo.NumberExists(ctx, docType, number)
		if err != nil {
			return nil, fmt.Errorf("failed to check number: %w", err)
		}
		if !taken {
			return &domain.NextNumberDTO{DocumentType: docType, Number: number}, nil
		}
	}
	return nil, domain.NewConflictError(fmt.Sprintf("No free %s number found for pattern %q", docType, pattern))
}

// Consume advances the sequence when number was issued from the pattern.
// Numbers entered by hand in another format are ignored.
func (s *NumberSequenceService) Consume(ctx context.Context, docType domain.DocumentType, number string) {
	pattern, err := s.pattern(ctx, docType)
	if err != nil {
		s.logger.Warn("failed to load numbering pattern", zap.String("documentType", string(docType)), zap.Error(err))
		return
	}

	now := s.now()
	seq, ok := ParseSequence(pattern, now, number)
	if !ok {
		return
	}
	if err := s.repo.SetSequence(ctx, docType, now.Year(), seq); err != nil {
		s.logger.Warn("failed to advance number sequence",
			zap.String("documentType", string(docType)),
			zap.String("number", number),
			zap.Error(err))
		return
	}

	s.logger.Debug("number sequence advanced",
		zap.String("documentType", string(docType)),
		zap.Int("year", now.Year()),
		zap.Int("sequence", seq))
}

// GetCurrentSequence returns the last consumed sequence for docType and year
func (s *NumberSequenceService) GetCurrentSequence(ctx context.Context, docType domain.DocumentType, year int) (int, error) {
	return s.repo.GetCurrentSequence(ctx, docType, year)
}
