package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/outbound/repository/postgres/db"

	"github.com/jackc/pgx/v5"
)

const postColumns = `id, user_id, nickname, category_list, title, content, img, created_at, updated_at`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("user_id", post.UserID), slog.String("title", post.Title))

	now := time.Now()

	args := pgx.NamedArgs{
		"user_id":       post.UserID,
		"nickname":      post.Nickname,
		"category_list": post.CategoryList,
		"title":         post.Title,
		"content":       post.Content,
		"img":           post.Img,
		"created_at":    now,
		"updated_at":    now,
	}

	query := `
		INSERT INTO posts (user_id, nickname, category_list, title, content, img, created_at, updated_at)
		VALUES (@user_id, @nickname, @category_list, @title, @content, @img, @created_at, @updated_at)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID), slog.Int64("user_id", createdPost.UserID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_by_id", start, true)
	p.log.Debug("Successfully retrieved post by ID", slog.Int64("id", post.ID), slog.Int64("user_id", post.UserID))
	return post, nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing posts with filters",
		slog.Any("category_list", filters.CategoryList),
		slog.Any("limit", filters.Limit),
		slog.Any("offset", filters.Offset))

	args := pgx.NamedArgs{}
	query := `SELECT ` + postColumns + ` FROM posts`

	var whereClauses []string
	if filters.CategoryList != nil {
		whereClauses = append(whereClauses, "category_list = @category_list")
		args["category_list"] = *filters.CategoryList
	}
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit != nil {
		query += " LIMIT @limit"
		args["limit"] = *filters.Limit
	}
	if filters.Offset != nil {
		query += " OFFSET @offset"
		args["offset"] = *filters.Offset
	}

	p.log.Debug("Executing list query", slog.String("query", query))
	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.observe("post_list", start, false)
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_list", start, true)
	p.log.Debug("Retrieved posts in List", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, userID int64, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", id), slog.Int64("user_id", userID))

	args := pgx.NamedArgs{
		"id":            id,
		"user_id":       userID,
		"category_list": update.CategoryList,
		"title":         update.Title,
		"content":       update.Content,
		"updated_at":    time.Now(),
	}

	query := `
		UPDATE posts
		SET category_list = @category_list, title = @title, content = @content, updated_at = @updated_at
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("No owned post matched during Update", slog.Int64("id", id), slog.Int64("user_id", userID))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updatedPost.ID),
		slog.Time("updated_at", updatedPost.UpdatedAt))
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64, userID int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id), slog.Int64("user_id", userID))

	args := pgx.NamedArgs{"id": id, "user_id": userID}
	query := `DELETE FROM posts WHERE id = @id AND user_id = @user_id`

	result, err := p.db.Exec(ctx, query, args)
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, false)
		p.log.Debug("No owned post matched during deletion", slog.Int64("id", id), slog.Int64("user_id", userID))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Nickname,
		&post.CategoryList,
		&post.Title,
		&post.Content,
		&post.Img,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
