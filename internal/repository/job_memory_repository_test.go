package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/resumind/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(title string, vec []float32, created time.Time) *model.Job {
	return &model.Job{
		ID:        uuid.New(),
		Title:     title,
		Company:   "Acme",
		Embedding: pgvector.NewVector(vec),
		CreatedAt: created,
	}
}

func TestMemoryJobCatalog_SearchRanksByDistance(t *testing.T) {
	ctx := context.Background()
	cat := NewMemoryJobCatalog()
	now := time.Now()

	require.NoError(t, cat.CreateJob(ctx, newJob("far", []float32{10, 10}, now)))
	require.NoError(t, cat.CreateJob(ctx, newJob("near", []float32{1, 1}, now)))
	require.NoError(t, cat.CreateJob(ctx, newJob("odd", []float32{1}, now)))
	require.NoError(t, cat.CreateJob(ctx, newJob("mid", []float32{3, 3}, now)))

	got, err := cat.SearchJobs(ctx, pgvector.NewVector([]float32{0, 0}), 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "near", got[0].Title)
	assert.Equal(t, "mid", got[1].Title)
	assert.Equal(t, "far", got[2].Title)
}

func TestMemoryJobCatalog_CRUD(t *testing.T) {
	ctx := context.Background()
	cat := NewMemoryJobCatalog()
	now := time.Now()

	older := newJob("older", nil, now.Add(-time.Hour))
	newer := newJob("newer", nil, now)
	require.NoError(t, cat.CreateJob(ctx, older))
	require.NoError(t, cat.CreateJob(ctx, newer))

	jobs, err := cat.GetJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "newer", jobs[0].Title)

	found, err := cat.FindJobByID(ctx, older.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "older", found.Title)

	require.NoError(t, cat.DeleteJob(ctx, older.ID.String()))
	_, err = cat.FindJobByID(ctx, older.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, cat.DeleteJob(ctx, older.ID.String()), ErrNotFound)
}
