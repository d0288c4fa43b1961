package category_repository

import (
	"context"

	model "board-post-service/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/category --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateByPost(ctx context.Context, postID int64, categoryList string) error
	DeleteByPost(ctx context.Context, postID int64) error
}
