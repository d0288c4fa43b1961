package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
)

type PostRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.Int64("user_id", post.UserID), slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()

	newPost := &model.Post{
		ID:           p.nextID,
		UserID:       post.UserID,
		Nickname:     post.Nickname,
		CategoryList: post.CategoryList,
		Title:        post.Title,
		Content:      post.Content,
		Img:          copyString(post.Img),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID))
	return clonePost(newPost), nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	return clonePost(post), nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		if filters.CategoryList != nil && post.CategoryList != *filters.CategoryList {
			continue
		}
		result = append(result, clonePost(post))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filters.Offset != nil {
		if *filters.Offset >= len(result) {
			return []*model.Post{}, nil
		}
		result = result[*filters.Offset:]
	}
	if filters.Limit != nil && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}

	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, userID int64, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists || post.UserID != userID {
		return nil, custom_errors.ErrPostNotFound
	}

	post.CategoryList = update.CategoryList
	post.Title = update.Title
	post.Content = update.Content
	post.UpdatedAt = time.Now()

	return clonePost(post), nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64, userID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists || post.UserID != userID {
		return custom_errors.ErrPostNotFound
	}

	delete(p.posts, id)
	return nil
}

// Snapshot and Restore let the in-memory unit of work roll back.
func (p *PostRepository) Snapshot() func() {
	p.mu.RLock()
	saved := make(map[int64]*model.Post, len(p.posts))
	for id, post := range p.posts {
		saved[id] = clonePost(post)
	}
	nextID := p.nextID
	p.mu.RUnlock()

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.posts = saved
		p.nextID = nextID
	}
}

func clonePost(post *model.Post) *model.Post {
	c := *post
	c.Img = copyString(post.Img)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
