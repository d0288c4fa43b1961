package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
)

type CategoryRepository struct {
	log        ports.Logger
	mu         sync.RWMutex
	categories map[int64]*model.Category
	nextID     int64
}

func NewCategoryRepository(log ports.Logger) *CategoryRepository {
	return &CategoryRepository{
		log:        log,
		categories: make(map[int64]*model.Category),
		nextID:     1,
	}
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.categories[category.PostID]; exists {
		c.log.Debug("Category already exists for post (memory impl)", slog.Int64("post_id", category.PostID))
		return nil, custom_errors.ErrCategoryCreateFailed
	}

	created := &model.Category{
		ID:           c.nextID,
		PostID:       category.PostID,
		CategoryList: category.CategoryList,
		CreatedAt:    time.Now(),
	}
	c.nextID++
	c.categories[created.PostID] = created

	result := *created
	return &result, nil
}

// GetByPost and Count let tests inspect the stored rows.
func (c *CategoryRepository) GetByPost(ctx context.Context, postID int64) (*model.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	category, exists := c.categories[postID]
	if !exists {
		return nil, custom_errors.ErrCategoryNotFound
	}
	result := *category
	return &result, nil
}

func (c *CategoryRepository) UpdateByPost(ctx context.Context, postID int64, categoryList string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	category, exists := c.categories[postID]
	if !exists {
		return custom_errors.ErrCategoryNotFound
	}
	category.CategoryList = categoryList
	return nil
}

func (c *CategoryRepository) DeleteByPost(ctx context.Context, postID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.categories[postID]; !exists {
		return custom_errors.ErrCategoryNotFound
	}
	delete(c.categories, postID)
	return nil
}

func (c *CategoryRepository) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.categories)
}

func (c *CategoryRepository) Snapshot() func() {
	c.mu.RLock()
	saved := make(map[int64]*model.Category, len(c.categories))
	for postID, category := range c.categories {
		cp := *category
		saved[postID] = &cp
	}
	nextID := c.nextID
	c.mu.RUnlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.categories = saved
		c.nextID = nextID
	}
}
