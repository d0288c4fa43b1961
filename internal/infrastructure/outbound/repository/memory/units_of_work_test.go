package memory_test

import (
	"context"
	"testing"

	model "board-post-service/internal/domain/models"
	"board-post-service/internal/infrastructure/logger"
	category_memory "board-post-service/internal/infrastructure/outbound/repository/category/memory"
	"board-post-service/internal/infrastructure/outbound/repository/memory"
	post_memory "board-post-service/internal/infrastructure/outbound/repository/post/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUOW(t *testing.T) (*memory.UnitOfWork, *post_memory.PostRepository, *category_memory.CategoryRepository) {
	log := logger.New("test")
	postRepo := post_memory.NewPostRepository(log)
	categoryRepo := category_memory.NewCategoryRepository(log)
	return memory.NewUnitOfWork(postRepo, categoryRepo), postRepo, categoryRepo
}

func TestUnitOfWork_Commit(t *testing.T) {
	uow, postRepo, categoryRepo := setupUOW(t)
	ctx := context.Background()

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)

	post, err := tx.PostRepository().Create(ctx, &model.Post{UserID: 1, Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = tx.CategoryRepository().Create(ctx, &model.Category{PostID: post.ID, CategoryList: "tech"})
	require.NoError(t, err)

	require.NoError(t, tx.Commit(ctx))
	assert.EqualError(t, tx.Rollback(ctx), "tx is closed")

	_, err = postRepo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, categoryRepo.Count())
}

func TestUnitOfWork_Rollback(t *testing.T) {
	uow, postRepo, categoryRepo := setupUOW(t)
	ctx := context.Background()

	kept, err := postRepo.Create(ctx, &model.Post{UserID: 1, Title: "kept", Content: "c"})
	require.NoError(t, err)

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.PostRepository().Create(ctx, &model.Post{UserID: 1, Title: "discarded", Content: "c"})
	require.NoError(t, err)
	_, err = tx.PostRepository().Update(ctx, kept.ID, 1, &model.UpdatePostDTO{CategoryList: "x", Title: "changed", Content: "changed"})
	require.NoError(t, err)
	_, err = tx.CategoryRepository().Create(ctx, &model.Category{PostID: kept.ID, CategoryList: "x"})
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))

	posts, err := postRepo.List(ctx, model.PostFilters{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "kept", posts[0].Title)
	assert.Equal(t, 0, categoryRepo.Count())

	// ids handed out inside the rolled back transaction are reused
	next, err := postRepo.Create(ctx, &model.Post{UserID: 1, Title: "next", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, kept.ID+1, next.ID)
}

func TestUnitOfWork_SerializesTransactions(t *testing.T) {
	uow, _, _ := setupUOW(t)
	ctx := context.Background()

	first, err := uow.Begin(ctx)
	require.NoError(t, err)

	started := make(chan struct{})
	go func() {
		second, err := uow.Begin(ctx)
		if err == nil {
			_ = second.Commit(ctx)
		}
		close(started)
	}()

	select {
	case <-started:
		t.Fatal("second transaction began before the first finished")
	default:
	}

	require.NoError(t, first.Commit(ctx))
	<-started
}
