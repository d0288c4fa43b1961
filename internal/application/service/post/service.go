package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	category_repository "board-post-service/internal/domain/ports/output/category"
	post_repository "board-post-service/internal/domain/ports/output/post"

	"github.com/go-playground/validator/v10"
)

type PostService struct {
	postRepo     post_repository.Repository
	categoryRepo category_repository.Repository
	uow          ports.UnitOfWork
	validate     *validator.Validate
	log          ports.Logger
	metrics      ports.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	categoryRepo category_repository.Repository,
	uow ports.UnitOfWork,
	validate *validator.Validate,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		uow:          uow,
		validate:     validate,
		log:          log,
		metrics:      metrics,
	}
}

// CreatePost writes the post and its category row in one transaction.
func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations("create", err == nil) }()

	if err := s.validate.Struct(post); err != nil {
		s.log.Debug("Create post validation failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrPostValidation
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	createdPost, err := tx.PostRepository().Create(ctx, &model.Post{
		UserID:       post.UserID,
		Nickname:     post.Nickname,
		CategoryList: post.CategoryList,
		Title:        post.Title,
		Content:      post.Content,
		Img:          post.Img,
	})
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	_, err = tx.CategoryRepository().Create(ctx, &model.Category{
		PostID:       createdPost.ID,
		CategoryList: createdPost.CategoryList,
	})
	if err != nil {
		s.log.Error("Failed to create category for post",
			slog.Int64("post_id", createdPost.ID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrCategoryCreateFailed
	}

	if err = s.commit(ctx, tx); err != nil {
		return nil, err
	}
	txCommitted = true

	s.log.Info("Post created", slog.Int64("post_id", createdPost.ID), slog.Int64("user_id", createdPost.UserID))
	return createdPost, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("post_id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	if filters == nil {
		filters = &model.PostFilters{}
	}

	posts, err := s.postRepo.List(ctx, *filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

// ListPostsByInterest returns the posts tagged with the user's interest. An
// empty result is not an error; a missing interest is.
func (s *PostService) ListPostsByInterest(ctx context.Context, user *model.User) ([]*model.Post, error) {
	if user == nil || user.Interest == "" {
		return nil, custom_errors.ErrInterestNotSet
	}

	interest := user.Interest
	posts, err := s.postRepo.List(ctx, model.PostFilters{CategoryList: &interest})
	if err != nil {
		s.log.Error("Failed to list posts by interest",
			slog.String("interest", interest),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

// UpdatePost checks existence, then the payload, then ownership. The update
// itself is scoped to the owner, so a success means a row really changed.
func (s *PostService) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) (err error) {
	defer func() { s.metrics.IncrementPostOperations("update", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	postRepo := tx.PostRepository()
	categoryRepo := tx.CategoryRepository()

	existingPost, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when updating", slog.Int64("post_id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if post == nil {
		return custom_errors.ErrPostValidation
	}
	if err = s.validate.Struct(post); err != nil {
		s.log.Debug("Update post validation failed", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrPostValidation
	}

	if existingPost.UserID != userID {
		s.log.Debug("User is not author of post", slog.Int64("user_id", userID), slog.Int64("author_id", existingPost.UserID))
		return custom_errors.ErrForbidden
	}

	if _, err = postRepo.Update(ctx, id, userID, post); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if existingPost.CategoryList != post.CategoryList {
		if err = categoryRepo.UpdateByPost(ctx, id, post.CategoryList); err != nil {
			if !errors.Is(err, custom_errors.ErrCategoryNotFound) {
				s.log.Error("Failed to update category", slog.Int64("post_id", id), slog.String("error", err.Error()))
				return custom_errors.ErrCategoryUpdateFailed
			}
			s.log.Warn("Category row missing for post, recreating", slog.Int64("post_id", id))
			if _, err = categoryRepo.Create(ctx, &model.Category{PostID: id, CategoryList: post.CategoryList}); err != nil {
				s.log.Error("Failed to recreate category", slog.Int64("post_id", id), slog.String("error", err.Error()))
				return custom_errors.ErrCategoryCreateFailed
			}
		}
	}

	if err = s.commit(ctx, tx); err != nil {
		return err
	}
	txCommitted = true
	return nil
}

// DeletePost removes the post and its category row together.
func (s *PostService) DeletePost(ctx context.Context, userID int64, id int64) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	postRepo := tx.PostRepository()
	categoryRepo := tx.CategoryRepository()

	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when deleting post", slog.Int64("post_id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return custom_errors.ErrDatabaseQuery
	}
	if post.UserID != userID {
		s.log.Debug("User is not author of post", slog.Int64("user_id", userID), slog.Int64("author_id", post.UserID))
		return custom_errors.ErrForbidden
	}

	if err = categoryRepo.DeleteByPost(ctx, id); err != nil {
		if !errors.Is(err, custom_errors.ErrCategoryNotFound) {
			s.log.Error("Failed to delete category", slog.String("error", err.Error()), slog.Int64("post_id", id))
			return custom_errors.ErrCategoryDeleteFailed
		}
		s.log.Debug("No category row for post during delete", slog.Int64("post_id", id))
	}

	if err = postRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("post_id", id))
		return custom_errors.ErrDatabaseQuery
	}

	if err = s.commit(ctx, tx); err != nil {
		return err
	}
	txCommitted = true

	s.log.Info("Post deleted", slog.Int64("post_id", id), slog.Int64("user_id", userID))
	return nil
}

func (s *PostService) commit(ctx context.Context, tx ports.Transaction) error {
	if err := tx.Commit(ctx); err != nil {
		if strings.Contains(err.Error(), "commit unexpectedly resulted in rollback") {
			s.log.Warn("Transaction commit resulted in rollback", slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (s *PostService) rollback(ctx context.Context, tx ports.Transaction) {
	rollbackErr := tx.Rollback(ctx)
	if rollbackErr == nil {
		return
	}
	if strings.Contains(rollbackErr.Error(), "tx is closed") {
		s.log.Debug("Transaction already closed during rollback", slog.String("error", rollbackErr.Error()))
		return
	}
	s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
}
