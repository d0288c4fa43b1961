package memory

import (
	"context"
	"errors"
	"sync"

	ports "board-post-service/internal/domain/ports/output"
	category_repository "board-post-service/internal/domain/ports/output/category"
	post_repository "board-post-service/internal/domain/ports/output/post"
	category_memory "board-post-service/internal/infrastructure/outbound/repository/category/memory"
	post_memory "board-post-service/internal/infrastructure/outbound/repository/post/memory"
)

var errTxClosed = errors.New("tx is closed")

// UnitOfWork serializes transactions over the in-memory repositories and
// restores their previous state on rollback.
type UnitOfWork struct {
	mu           sync.Mutex
	postRepo     *post_memory.PostRepository
	categoryRepo *category_memory.CategoryRepository
}

func NewUnitOfWork(postRepo *post_memory.PostRepository, categoryRepo *category_memory.CategoryRepository) *UnitOfWork {
	return &UnitOfWork{postRepo: postRepo, categoryRepo: categoryRepo}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	u.mu.Lock()
	return &Transaction{
		uow:             u,
		restorePosts:    u.postRepo.Snapshot(),
		restoreCategory: u.categoryRepo.Snapshot(),
	}, nil
}

type Transaction struct {
	uow             *UnitOfWork
	restorePosts    func()
	restoreCategory func()
	closed          bool
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return t.uow.postRepo
}

func (t *Transaction) CategoryRepository() category_repository.Repository {
	return t.uow.categoryRepo
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.uow.mu.Unlock()
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.restorePosts()
	t.restoreCategory()
	t.uow.mu.Unlock()
	return nil
}
