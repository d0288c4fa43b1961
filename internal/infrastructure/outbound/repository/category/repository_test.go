package category_repository_test

import (
	"context"
	"testing"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	"board-post-service/internal/infrastructure/logger"
	"board-post-service/internal/infrastructure/outbound/repository/category/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryTest(t *testing.T) (*memory.CategoryRepository, func()) {
	log := logger.New("test")
	repo := memory.NewCategoryRepository(log)
	return repo, func() {}
}

func TestCategoryRepository_Create(t *testing.T) {
	repo, cleanup := setupCategoryTest(t)
	defer cleanup()

	tests := []struct {
		name     string
		category *model.Category
		wantErr  error
	}{
		{
			name:     "successful creation",
			category: &model.Category{PostID: 1, CategoryList: "tech"},
		},
		{
			name:     "empty tag is stored as is",
			category: &model.Category{PostID: 2, CategoryList: ""},
		},
		{
			name:     "one row per post",
			category: &model.Category{PostID: 1, CategoryList: "life"},
			wantErr:  custom_errors.ErrCategoryCreateFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, got.ID)
			assert.Equal(t, tt.category.PostID, got.PostID)
			assert.Equal(t, tt.category.CategoryList, got.CategoryList)
			assert.False(t, got.CreatedAt.IsZero())
		})
	}
}

func TestCategoryRepository_Lifecycle(t *testing.T) {
	repo, cleanup := setupCategoryTest(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Category{PostID: 4, CategoryList: "tech"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateByPost(ctx, 4, "life"))

	got, err := repo.GetByPost(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "life", got.CategoryList)

	require.NoError(t, repo.DeleteByPost(ctx, 4))

	_, err = repo.GetByPost(ctx, 4)
	assert.ErrorIs(t, err, custom_errors.ErrCategoryNotFound)
	assert.ErrorIs(t, repo.UpdateByPost(ctx, 4, "tech"), custom_errors.ErrCategoryNotFound)
	assert.ErrorIs(t, repo.DeleteByPost(ctx, 4), custom_errors.ErrCategoryNotFound)
}
