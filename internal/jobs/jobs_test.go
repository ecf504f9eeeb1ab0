package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRunner struct {
	calls    atomic.Int32
	err      error
	deadline bool
}

func (f *fakeRunner) Run(ctx context.Context) (*domain.BackupResult, error) {
	f.calls.Add(1)
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &domain.BackupResult{Location: "backups/imanage-20250315-103000.db", SizeBytes: 4096}, nil
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "0 0 2 * * *", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	err := s.AddJob("a", "@every 1h", func() {})
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
	assert.Error(t, s.RemoveJob("a"))
}

func TestScheduler_RejectsInvalidExpression(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	err := s.AddJob("bad", "not a cron", func() {})
	assert.ErrorContains(t, err, "failed to add job bad")
	assert.Empty(t, s.JobNames())
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	var ran atomic.Int32
	require.NoError(t, s.AddJob("tick", "* * * * * *", func() { ran.Add(1) }))

	s.Start()
	defer func() { <-s.Stop().Done() }()

	assert.Eventually(t, func() bool { return ran.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestBackupJob_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	runner := &fakeRunner{}

	jobs.NewBackupJob(runner, zap.New(core), 0).Run()

	assert.EqualValues(t, 1, runner.calls.Load())
	assert.True(t, runner.deadline)
	entries := logs.FilterMessage("database backup completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "backups/imanage-20250315-103000.db", entries[0].ContextMap()["location"])
}

func TestBackupJob_RunLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	runner := &fakeRunner{err: errors.New("disk full")}

	jobs.NewBackupJob(runner, zap.New(core), time.Second).Run()

	assert.Equal(t, 1, logs.FilterMessage("database backup failed").Len())
	assert.Zero(t, logs.FilterMessage("database backup completed").Len())
}

func TestRegisterBackupJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, jobs.RegisterBackupJob(s, &fakeRunner{}, zap.NewNop(), "0 0 2 * * *", time.Minute))
	assert.Equal(t, []string{jobs.BackupJobName}, s.JobNames())
}
