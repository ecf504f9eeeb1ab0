package jobs

import (
	"context"
	"time"

	"github.com/imanage/imanage-api/internal/domain"
	"go.uber.org/zap"
)

// BackupJobName is the scheduler name of the database snapshot job
const BackupJobName = "database_backup"

// DefaultBackupTimeout bounds a single snapshot and upload
const DefaultBackupTimeout = 10 * time.Minute

// BackupRunner takes one database snapshot
type BackupRunner interface {
	Run(ctx context.Context) (*domain.BackupResult, error)
}

// BackupJob snapshots the database on a schedule
type BackupJob struct {
	runner  BackupRunner
	logger  *zap.Logger
	timeout time.Duration
}

func NewBackupJob(runner BackupRunner, logger *zap.Logger, timeout time.Duration) *BackupJob {
	if timeout <= 0 {
		timeout = DefaultBackupTimeout
	}
	return &BackupJob{
		runner:  runner,
		logger:  logger,
		timeout: timeout,
	}
}

// Run is called by the scheduler. Failures are logged and retried on the
// next tick.
func (j *BackupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	result, err := j.runner.Run(ctx)
	if err != nil {
		j.logger.Error("database backup failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("database backup completed",
		zap.String("location", result.Location),
		zap.Int64("size_bytes", result.SizeBytes),
		zap.Duration("duration", time.Since(start)))
}

// RegisterBackupJob adds the backup job to the scheduler
func RegisterBackupJob(scheduler *Scheduler, runner BackupRunner, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewBackupJob(runner, logger, timeout)
	return scheduler.AddJob(BackupJobName, cronExpr, job.Run)
}
