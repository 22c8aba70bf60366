package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketcal/internal/database"
	"github.com/aristath/marketcal/internal/modules/market_hours"
)

func newTestCacheDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"six field spec", "0 0 3 * * *", false},
		{"descriptor", "@daily", false},
		{"interval", "@every 6h", false},
		{"garbage", "not a schedule", true},
		{"five field spec", "0 3 * * *", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddJob(tt.schedule, &countingJob{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
	assert.Equal(t, 3, s.Entries())

	s.Start()
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())

	job := &countingJob{}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	failing := &countingJob{err: errors.New("boom")}
	assert.EqualError(t, s.RunNow(failing), "boom")
}

func TestWarmCacheJob_Run(t *testing.T) {
	factory := market_hours.NewCalendarFactory(zerolog.Nop())
	_, err := factory.Add(nil, market_hours.NewNYSE)
	require.NoError(t, err)
	_, err = factory.Add(nil, market_hours.NewCrypto)
	require.NoError(t, err)

	job := NewWarmCacheJob(factory,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		zerolog.Nop())

	assert.Equal(t, "warm_calendar_cache", job.Name())
	assert.NoError(t, New(zerolog.Nop()).RunNow(job))
}

func TestScheduler_RecordsHistory(t *testing.T) {
	history := NewJobHistory(newTestCacheDB(t))
	s := New(zerolog.Nop())
	s.SetHistory(history)

	require.NoError(t, s.RunNow(&countingJob{}))
	assert.Error(t, s.RunNow(&countingJob{err: errors.New("boom")}))

	runs, err := history.Recent(context.Background(), "", 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	statuses := map[string]int{}
	for _, run := range runs {
		assert.Equal(t, "counting", run.Job)
		assert.Len(t, run.ID, 36)
		statuses[run.Status]++
		if run.Status == StatusFailed {
			assert.Equal(t, "boom", run.Error)
		}
	}
	assert.Equal(t, map[string]int{StatusSuccess: 1, StatusFailed: 1}, statuses)
}

func TestJobHistory_Recent(t *testing.T) {
	history := NewJobHistory(newTestCacheDB(t))
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 3, 0, 0, 0, time.UTC)

	for i, job := range []string{"warm_calendar_cache", "wal_checkpoint", "warm_calendar_cache"} {
		require.NoError(t, history.Record(ctx, JobRun{
			ID:        job + string(rune('a'+i)),
			Job:       job,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:  1500 * time.Millisecond,
			Status:    StatusSuccess,
		}))
	}

	tests := []struct {
		name    string
		job     string
		limit   int
		wantIDs []string
	}{
		{"all jobs newest first", "", 10, []string{"warm_calendar_cachec", "wal_checkpointb", "warm_calendar_cachea"}},
		{"filtered by job", "warm_calendar_cache", 10, []string{"warm_calendar_cachec", "warm_calendar_cachea"}},
		{"limited", "", 1, []string{"warm_calendar_cachec"}},
		{"unknown job", "nope", 10, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := history.Recent(ctx, tt.job, tt.limit)
			require.NoError(t, err)
			ids := make([]string, 0, len(runs))
			for _, run := range runs {
				ids = append(ids, run.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	runs, err := history.Recent(ctx, "wal_checkpoint", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, base.Add(time.Hour), runs[0].StartedAt)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Duration)
}

func TestWALCheckpointJob_Run(t *testing.T) {
	job := NewWALCheckpointJob(newTestCacheDB(t), zerolog.Nop())
	assert.Equal(t, "wal_checkpoint", job.Name())
	assert.NoError(t, job.Run())
}
