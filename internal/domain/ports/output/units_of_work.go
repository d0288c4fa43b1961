package ports

import (
	"context"

	category_repository "board-post-service/internal/domain/ports/output/category"
	post_repository "board-post-service/internal/domain/ports/output/post"
)

//go:generate mockery --name UnitOfWork --dir . --output ../../../../mocks/postgres --outpkg mocks --filename UnitOfWork.go
type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

//go:generate mockery --name Transaction --dir . --output ../../../../mocks/postgres --outpkg mocks --filename Transaction.go
type Transaction interface {
	PostRepository() post_repository.Repository
	CategoryRepository() category_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
