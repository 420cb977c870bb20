package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskslip/taskslip/models"
	"github.com/taskslip/taskslip/types"
)

// wordEmbedder maps known phrases to fixed vectors so similarity
// ordering is deterministic without a network call.
type wordEmbedder struct {
	vectors map[string][]float32
}

func (w *wordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	for phrase, vec := range w.vectors {
		if strings.Contains(text, phrase) {
			return vec, nil
		}
	}
	return []float32{0, 0, 1}, nil
}

func openTestStore(t *testing.T, opts ...Option) *SQLStore {
	t.Helper()
	s, err := Open(types.DatabaseConfig{Path: filepath.Join(t.TempDir(), "tasks.db")}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, models.NewTask("Renew passport", models.PriorityHigh, "2026-09-15"))
	require.NoError(t, err)
	assert.Greater(t, added.ID, int64(0))

	got, err := s.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renew passport", got.Name)
	assert.Equal(t, models.StatusTodo, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "2026-09-15", got.DueDate)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddRejectsInvalidTask(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Add(context.Background(), models.Task{Name: "", Status: models.StatusTodo, Priority: models.PriorityLow})
	assert.Error(t, err)
}

func TestRecentOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first", "second", "third"} {
		task := models.NewTask(name, models.PriorityMedium, "")
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.Add(ctx, task)
		require.NoError(t, err)
	}

	tasks, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "third", tasks[0].Name)
	assert.Equal(t, "second", tasks[1].Name)
}

func TestSearchByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Book dentist appointment", "Pay dentist invoice", "Water plants"} {
		_, err := s.Add(ctx, models.NewTask(name, models.PriorityMedium, ""))
		require.NoError(t, err)
	}

	tasks, err := s.SearchByName(ctx, "dentist", 10)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestFindSimilarRanksByDistance(t *testing.T) {
	emb := &wordEmbedder{vectors: map[string][]float32{
		"tax":     {1, 0, 0},
		"taxes":   {0.99, 0.1, 0},
		"laundry": {0, 1, 0},
	}}
	s := openTestStore(t, WithEmbedder(emb))
	ctx := context.Background()

	_, err := s.Add(ctx, models.NewTask("File taxes", models.PriorityHigh, ""))
	require.NoError(t, err)
	_, err = s.Add(ctx, models.NewTask("Do laundry", models.PriorityLow, ""))
	require.NoError(t, err)

	got, err := s.FindSimilar(ctx, "tax return", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "File taxes", got[0].Name)
	require.NotNil(t, got[0].SimilarityDistance)
	require.NotNil(t, got[1].SimilarityDistance)
	assert.Less(t, *got[0].SimilarityDistance, *got[1].SimilarityDistance)
	assert.Less(t, *got[0].SimilarityDistance, 0.1)
}

func TestFindSimilarFallsBackWithoutEmbedder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, models.NewTask("Call plumber", models.PriorityMedium, ""))
	require.NoError(t, err)

	got, err := s.FindSimilar(ctx, "plumber", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].SimilarityDistance)
}

func TestFindSimilarFallsBackWhenNoVectorsStored(t *testing.T) {
	// Embedder configured now, but existing rows predate it.
	s := openTestStore(t)
	_, err := s.Add(context.Background(), models.NewTask("Call plumber", models.PriorityMedium, ""))
	require.NoError(t, err)

	s.embedder = &wordEmbedder{vectors: map[string][]float32{}}
	got, err := s.FindSimilar(context.Background(), "plumber", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSetStatusAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, models.NewTask("Ship package", models.PriorityMedium, ""))
	require.NoError(t, err)

	require.NoError(t, s.SetStatus(ctx, added.ID, models.StatusDone))
	got, err := s.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)

	assert.ErrorIs(t, s.SetStatus(ctx, 9999, models.StatusDone), ErrNotFound)

	require.NoError(t, s.Delete(ctx, added.ID))
	_, err = s.Get(ctx, added.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, added.ID), ErrNotFound)
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	_, err := s.Add(ctx, models.NewTask("urgent thing", models.PriorityHigh, today))
	require.NoError(t, err)
	_, err = s.Add(ctx, models.NewTask("normal thing", models.PriorityMedium, "2030-01-01"))
	require.NoError(t, err)
	low, err := s.Add(ctx, models.NewTask("later thing", models.PriorityLow, "2030-01-01"))
	require.NoError(t, err)
	require.NoError(t, s.SetStatus(ctx, low.ID, models.StatusDone))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.High)
	assert.Equal(t, 1, stats.Medium)
	assert.Equal(t, 1, stats.Low)
	assert.Equal(t, 1, stats.DueToday)
	assert.Equal(t, 2, stats.ByStatus[models.StatusTodo])
	assert.Equal(t, 1, stats.ByStatus[models.StatusDone])
}
