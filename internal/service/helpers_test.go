package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newNumbering(db *gorm.DB) *service.NumberSequenceService {
	svc := service.NewNumberSequenceService(
		repository.NewNumberSequenceRepository(db),
		repository.NewSettingsRepository(db),
		zap.NewNop(),
	)
	svc.SetClock(fixedClock)
	return svc
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	derr, ok := domain.AsError(err)
	require.True(t, ok, "expected *domain.Error, got %v", err)
	require.Equal(t, kind, derr.Kind, derr.Message)
	return derr
}

func ptr[T any](v T) *T { return &v }

func mustParse(t *testing.T, id string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return parsed
}
