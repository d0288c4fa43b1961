package post_service

import (
	"context"

	model "board-post-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename Service.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error)
	ListPostsByInterest(ctx context.Context, user *model.User) ([]*model.Post, error)
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) error
	DeletePost(ctx context.Context, userID int64, id int64) error
}
