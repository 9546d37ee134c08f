package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"templatesvc/internal/db"
	"templatesvc/internal/model"
)

func setupRepo(t *testing.T) TemplateRepository {
	t.Helper()
	gormDB, err := db.Open(db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	_, err = db.Migrate(context.Background(), gormDB, db.DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewTemplateRepository(gormDB)
}

func TestTemplateRepository_CreateAndFindOne(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NewTemplate{Name: "A", Content: "B"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "A", created.Name)
	assert.Equal(t, "B", created.Content)
	assert.NotEmpty(t, created.CreatedAt)

	found, err := repo.FindOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestTemplateRepository_FindOneMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.FindOne(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTemplateRepository_LoadAll(t *testing.T) {
	tests := []struct {
		name    string
		created int
		want    int
	}{
		{name: "empty", created: 0, want: 0},
		{name: "below limit", created: 7, want: 7},
		{name: "above limit", created: 150, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupRepo(t)
			ctx := context.Background()
			for i := 0; i < tt.created; i++ {
				_, err := repo.Create(ctx, model.NewTemplate{Name: fmt.Sprintf("t%d", i), Content: "c"})
				require.NoError(t, err)
			}

			templates, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, templates)
			assert.Len(t, templates, tt.want)
		})
	}
}

func TestTemplateRepository_Save(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NewTemplate{Name: "old", Content: "old body"})
	require.NoError(t, err)

	updated, err := repo.Save(ctx, model.Template{
		ID:        created.ID,
		Name:      "new",
		Content:   "new body",
		CreatedAt: "1999-01-01 00:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "new body", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "created_at is never rewritten")

	found, err := repo.FindOne(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, found)
}

func TestTemplateRepository_SaveMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Save(context.Background(), model.Template{ID: 99, Name: "x", Content: "y"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTemplateRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.NewTemplate{Name: "A", Content: "B"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, model.NewTemplate{Name: "C", Content: "D"})
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.FindOne(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	remaining, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)
}

func TestTemplateRepository_ConcurrentCreatesReturnOwnRow(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	const workers = 20
	results := make([]*model.Template, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := repo.Create(ctx, model.NewTemplate{Name: fmt.Sprintf("n%d", i), Content: fmt.Sprintf("c%d", i)})
			assert.NoError(t, err)
			results[i] = created
		}(i)
	}
	wg.Wait()

	seen := make(map[uint]bool)
	for i, created := range results {
		require.NotNil(t, created)
		assert.Equal(t, fmt.Sprintf("n%d", i), created.Name)
		assert.Equal(t, fmt.Sprintf("c%d", i), created.Content)
		assert.False(t, seen[created.ID], "id %d returned twice", created.ID)
		seen[created.ID] = true
	}
}
