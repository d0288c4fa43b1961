package post_service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	post_service "board-post-service/internal/domain/ports/input/post"
	output "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/domain/ports/output/cache"
)

type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider

	// writes counts committed updates and deletes. A read that overlapped
	// one may hold the old row and must not repopulate the cache.
	writes atomic.Uint64
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.SetPost(ctx, result); err != nil {
		d.log.Warn("Failed to cache created post",
			slog.Int64("post_id", result.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	cacheStart := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	} else {
		d.metrics.IncrementCacheMisses()
	}

	seen := d.writes.Load()
	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.writes.Load() != seen {
		d.log.Debug("Post changed during load, not caching", slog.Int64("post_id", id))
		return post, nil
	}

	setCacheStart := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setCacheStart))

	// A write that landed between the check and the set may have missed our entry.
	if d.writes.Load() != seen {
		d.invalidate(ctx, id, "racing write")
	}

	return post, nil
}

// Feeds change with every write, so they always go to the store.
func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	return d.service.ListPosts(ctx, filters)
}

func (d *PostServiceCacheDecorator) ListPostsByInterest(ctx context.Context, user *model.User) ([]*model.Post, error) {
	return d.service.ListPostsByInterest(ctx, user)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) error {
	if err := d.service.UpdatePost(ctx, userID, id, post); err != nil {
		return err
	}

	d.writes.Add(1)
	d.invalidate(ctx, id, "update")
	return nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, userID int64, id int64) error {
	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}

	d.writes.Add(1)
	d.invalidate(ctx, id, "delete")
	return nil
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id int64, after string) {
	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after "+after,
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
}
