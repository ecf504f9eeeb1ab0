package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/imanage/imanage-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const backupContentType = "application/vnd.sqlite3"

// BackupService snapshots the database and ships the copy to storage
type BackupService struct {
	db     *gorm.DB
	store  storage.Storage
	prefix string
	now    func() time.Time
	logger *zap.Logger
}

func NewBackupService(db *gorm.DB, store storage.Storage, prefix string, logger *zap.Logger) *BackupService {
	return &BackupService{
		db:     db,
		store:  store,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// SetClock overrides the time source used in snapshot names
func (s *BackupService) SetClock(now func() time.Time) {
	s.now = now
}

// ObjectKey names the snapshot taken at t
func (s *BackupService) ObjectKey(t time.Time) string {
	name := "imanage-" + t.UTC().Format("20060102-150405") + ".db"
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

// Run writes a VACUUM INTO snapshot to a temporary file, uploads it and
// removes the temporary copy
func (s *BackupService) Run(ctx context.Context) (*domain.BackupResult, error) {
	if s.db == nil {
		return nil, domain.ErrDatabaseUnavailable
	}
	now := s.now()

	dir, err := os.MkdirTemp("", "imanage-backup-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, "snapshot.db")
	if err := database.Snapshot(ctx, s.db, local); err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}

	f, err := os.Open(local)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	location, size, err := s.store.Upload(ctx, s.ObjectKey(now), backupContentType, f)
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.logger.Info("Database backup stored",
		zap.String("location", location),
		zap.Int64("size_bytes", size),
	)
	return &domain.BackupResult{
		Location:  location,
		SizeBytes: size,
		CreatedAt: mapper.FormatTimestamp(now),
	}, nil
}
