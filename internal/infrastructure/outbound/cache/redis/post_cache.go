package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
)

const (
	postCacheKeyPrefix = "board:post:"
	defaultPostTTL     = 30 * time.Minute
)

type PostCache struct {
	client *Client
	ttl    time.Duration
	log    ports.Logger
}

func NewPostCache(client *Client, ttl time.Duration, log ports.Logger) *PostCache {
	if ttl <= 0 {
		ttl = defaultPostTTL
	}
	return &PostCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	key := postKey(postID)

	var post model.Post
	err := p.client.Get(ctx, key, &post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	p.log.Debug("Post cache hit", slog.Int64("post_id", postID))
	return &post, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.Post) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if err := p.client.Set(ctx, postKey(post.ID), post, p.ttl); err != nil {
		return fmt.Errorf("failed to set post cache: %w", err)
	}

	p.log.Debug("Post cached successfully",
		slog.Int64("post_id", post.ID),
		slog.Duration("ttl", p.ttl))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	if err := p.client.Delete(ctx, postKey(postID)); err != nil {
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}

	p.log.Debug("Post deleted from cache", slog.Int64("post_id", postID))
	return nil
}

func postKey(postID int64) string {
	return postCacheKeyPrefix + strconv.FormatInt(postID, 10)
}
