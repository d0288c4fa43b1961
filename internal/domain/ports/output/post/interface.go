package post_repository

import (
	"context"

	model "board-post-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error)
	// Update and Delete only touch the row owned by userID and report
	// ErrPostNotFound when nothing matched.
	Update(ctx context.Context, id int64, userID int64, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id int64, userID int64) error
}
