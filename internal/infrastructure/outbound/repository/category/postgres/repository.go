package category_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type CategoryRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCategoryRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CategoryRepository {
	return &CategoryRepository{db: db, log: log, metrics: metrics}
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	start := time.Now()
	c.log.Debug("Creating category", slog.Int64("post_id", category.PostID), slog.String("category_list", category.CategoryList))

	args := pgx.NamedArgs{
		"post_id":       category.PostID,
		"category_list": category.CategoryList,
		"created_at":    time.Now(),
	}
	query := `
		INSERT INTO categories (post_id, category_list, created_at)
		VALUES (@post_id, @category_list, @created_at)
		RETURNING id, post_id, category_list, created_at`

	var created model.Category
	err := c.db.QueryRow(ctx, query, args).Scan(&created.ID, &created.PostID, &created.CategoryList, &created.CreatedAt)
	if err != nil {
		c.metrics.IncrementCategoryOperations("create", false)
		c.metrics.RecordDatabaseQueryDuration("category_create", time.Since(start))
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			c.log.Debug("Category references missing post", slog.Int64("post_id", category.PostID))
			return nil, custom_errors.ErrPostNotFound
		}
		c.log.Error("Error creating category", slog.Int64("post_id", category.PostID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrCategoryCreateFailed
	}

	c.metrics.IncrementCategoryOperations("create", true)
	c.metrics.RecordDatabaseQueryDuration("category_create", time.Since(start))
	return &created, nil
}

func (c *CategoryRepository) UpdateByPost(ctx context.Context, postID int64, categoryList string) error {
	start := time.Now()
	args := pgx.NamedArgs{"post_id": postID, "category_list": categoryList}
	query := `UPDATE categories SET category_list = @category_list WHERE post_id = @post_id`

	result, err := c.db.Exec(ctx, query, args)
	if err != nil {
		c.metrics.IncrementCategoryOperations("update", false)
		c.metrics.RecordDatabaseQueryDuration("category_update", time.Since(start))
		c.log.Error("Error updating category", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrCategoryUpdateFailed
	}
	if result.RowsAffected() == 0 {
		c.metrics.IncrementCategoryOperations("update", false)
		c.metrics.RecordDatabaseQueryDuration("category_update", time.Since(start))
		return custom_errors.ErrCategoryNotFound
	}

	c.metrics.IncrementCategoryOperations("update", true)
	c.metrics.RecordDatabaseQueryDuration("category_update", time.Since(start))
	return nil
}

func (c *CategoryRepository) DeleteByPost(ctx context.Context, postID int64) error {
	start := time.Now()
	args := pgx.NamedArgs{"post_id": postID}
	query := `DELETE FROM categories WHERE post_id = @post_id`

	result, err := c.db.Exec(ctx, query, args)
	if err != nil {
		c.metrics.IncrementCategoryOperations("delete", false)
		c.metrics.RecordDatabaseQueryDuration("category_delete", time.Since(start))
		c.log.Error("Error deleting category", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrCategoryDeleteFailed
	}
	if result.RowsAffected() == 0 {
		c.metrics.IncrementCategoryOperations("delete", false)
		c.metrics.RecordDatabaseQueryDuration("category_delete", time.Since(start))
		return custom_errors.ErrCategoryNotFound
	}

	c.metrics.IncrementCategoryOperations("delete", true)
	c.metrics.RecordDatabaseQueryDuration("category_delete", time.Since(start))
	return nil
}
