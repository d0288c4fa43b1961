package post_service

import (
	"context"
	"errors"
	"testing"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	"board-post-service/internal/infrastructure/logger"
	"board-post-service/internal/infrastructure/outbound/metrics/prometheus"
	category_repository_mock "board-post-service/mocks/category"
	post_repository_mock "board-post-service/mocks/post"
	postgres_mock "board-post-service/mocks/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type serviceMocks struct {
	postRepo     *post_repository_mock.Repository
	categoryRepo *category_repository_mock.Repository
	uow          *postgres_mock.UnitOfWork
	tx           *postgres_mock.Transaction
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		postRepo:     new(post_repository_mock.Repository),
		categoryRepo: new(category_repository_mock.Repository),
		uow:          new(postgres_mock.UnitOfWork),
		tx:           new(postgres_mock.Transaction),
	}
}

func (m *serviceMocks) service() *PostService {
	return NewPostService(m.postRepo, m.categoryRepo, m.uow, validator.New(), logger.New("test"), prometheus.NewPrometheusMetricsProvider())
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	m.postRepo.AssertExpectations(t)
	m.categoryRepo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.tx.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }

func TestPostService_CreatePost(t *testing.T) {
	validPost := func() *model.CreatePostDTO {
		return &model.CreatePostDTO{
			UserID:       1,
			Nickname:     "alice",
			CategoryList: "tech",
			Title:        "Hello",
			Content:      "World",
			Img:          strPtr("https://cdn.example.com/a.png"),
		}
	}
	created := &model.Post{ID: 10, UserID: 1, Nickname: "alice", CategoryList: "tech", Title: "Hello", Content: "World"}

	tests := []struct {
		name        string
		post        *model.CreatePostDTO
		mocks       func(m *serviceMocks)
		want        *model.Post
		wantErrType error
	}{
		{
			name: "Success",
			post: validPost(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
				m.tx.On("PostRepository").Return(m.postRepo)
				m.tx.On("CategoryRepository").Return(m.categoryRepo)
				m.postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
					return p.UserID == 1 && p.Nickname == "alice" && p.Img != nil && *p.Img == "https://cdn.example.com/a.png"
				})).Return(created, nil)
				m.categoryRepo.On("Create", mock.Anything, &model.Category{PostID: 10, CategoryList: "tech"}).
					Return(&model.Category{ID: 1, PostID: 10, CategoryList: "tech"}, nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
			want: created,
		},
		{
			name: "Missing title",
			post: func() *model.CreatePostDTO { p := validPost(); p.Title = ""; return p }(),
			mocks: func(m *serviceMocks) {
			},
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name: "Missing content",
			post: func() *model.CreatePostDTO { p := validPost(); p.Content = ""; return p }(),
			mocks: func(m *serviceMocks) {
			},
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name: "Empty category is accepted",
			post: func() *model.CreatePostDTO { p := validPost(); p.CategoryList = ""; return p }(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
				m.tx.On("PostRepository").Return(m.postRepo)
				m.tx.On("CategoryRepository").Return(m.categoryRepo)
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
					Return(&model.Post{ID: 11, UserID: 1, Title: "Hello", Content: "World"}, nil)
				m.categoryRepo.On("Create", mock.Anything, &model.Category{PostID: 11}).Return(&model.Category{ID: 2, PostID: 11}, nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
			want: &model.Post{ID: 11, UserID: 1, Title: "Hello", Content: "World"},
		},
		{
			name: "Transaction begin error",
			post: validPost(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(nil, errors.New("db error"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
		{
			name: "Error creating post in repository",
			post: validPost(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
				m.tx.On("PostRepository").Return(m.postRepo)
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil, custom_errors.ErrDatabaseQuery)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
		{
			name: "Error creating category rolls back",
			post: validPost(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
				m.tx.On("PostRepository").Return(m.postRepo)
				m.tx.On("CategoryRepository").Return(m.categoryRepo)
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(created, nil)
				m.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
					Return(nil, custom_errors.ErrCategoryCreateFailed)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrCategoryCreateFailed,
		},
		{
			name: "Error committing transaction",
			post: validPost(),
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
				m.tx.On("PostRepository").Return(m.postRepo)
				m.tx.On("CategoryRepository").Return(m.categoryRepo)
				m.postRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(created, nil)
				m.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
					Return(&model.Category{ID: 1, PostID: 10, CategoryList: "tech"}, nil)
				m.tx.On("Commit", mock.Anything).Return(errors.New("commit failed"))
				m.tx.On("Rollback", mock.Anything).Return(errors.New("tx is closed"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.mocks(m)

			got, err := m.service().CreatePost(context.Background(), tt.post)

			if tt.wantErrType != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrType), "expected %v, got %v", tt.wantErrType, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			m.assertExpectations(t)
		})
	}
}

func TestPostService_GetPostByID(t *testing.T) {
	post := &model.Post{ID: 1, UserID: 2, Title: "t", Content: "c"}

	tests := []struct {
		name        string
		mocks       func(m *serviceMocks)
		want        *model.Post
		wantErrType error
	}{
		{
			name: "Success",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("GetByID", mock.Anything, int64(1)).Return(post, nil)
			},
			want: post,
		},
		{
			name: "Not found",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, custom_errors.ErrPostNotFound)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name: "Store error",
			mocks: func(m *serviceMocks) {
				m.postRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.mocks(m)

			got, err := m.service().GetPostByID(context.Background(), 1)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			m.assertExpectations(t)
		})
	}
}

func TestPostService_ListPosts(t *testing.T) {
	posts := []*model.Post{{ID: 2}, {ID: 1}}
	limit := 5

	t.Run("Nil filters list everything", func(t *testing.T) {
		m := newServiceMocks()
		m.postRepo.On("List", mock.Anything, model.PostFilters{}).Return(posts, nil)

		got, err := m.service().ListPosts(context.Background(), nil)

		assert.NoError(t, err)
		assert.Equal(t, posts, got)
		m.assertExpectations(t)
	})

	t.Run("Filters are passed through", func(t *testing.T) {
		m := newServiceMocks()
		m.postRepo.On("List", mock.Anything, model.PostFilters{Limit: &limit}).Return(posts[:1], nil)

		got, err := m.service().ListPosts(context.Background(), &model.PostFilters{Limit: &limit})

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		m.assertExpectations(t)
	})

	t.Run("Store error", func(t *testing.T) {
		m := newServiceMocks()
		m.postRepo.On("List", mock.Anything, model.PostFilters{}).Return(nil, errors.New("boom"))

		got, err := m.service().ListPosts(context.Background(), nil)

		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Nil(t, got)
		m.assertExpectations(t)
	})
}

func TestPostService_ListPostsByInterest(t *testing.T) {
	tests := []struct {
		name        string
		user        *model.User
		mocks       func(m *serviceMocks)
		wantLen     int
		wantErrType error
	}{
		{
			name: "Matching posts",
			user: &model.User{ID: 1, Interest: "tech"},
			mocks: func(m *serviceMocks) {
				m.postRepo.On("List", mock.Anything, mock.MatchedBy(func(f model.PostFilters) bool {
					return f.CategoryList != nil && *f.CategoryList == "tech" && f.Limit == nil && f.Offset == nil
				})).Return([]*model.Post{{ID: 1, CategoryList: "tech"}}, nil)
			},
			wantLen: 1,
		},
		{
			name: "No matching posts is not an error",
			user: &model.User{ID: 1, Interest: "cooking"},
			mocks: func(m *serviceMocks) {
				m.postRepo.On("List", mock.Anything, mock.AnythingOfType("model.PostFilters")).Return([]*model.Post{}, nil)
			},
			wantLen: 0,
		},
		{
			name:        "Interest not set",
			user:        &model.User{ID: 1},
			mocks:       func(m *serviceMocks) {},
			wantErrType: custom_errors.ErrInterestNotSet,
		},
		{
			name:        "No identity",
			user:        nil,
			mocks:       func(m *serviceMocks) {},
			wantErrType: custom_errors.ErrInterestNotSet,
		},
		{
			name: "Store error",
			user: &model.User{ID: 1, Interest: "tech"},
			mocks: func(m *serviceMocks) {
				m.postRepo.On("List", mock.Anything, mock.AnythingOfType("model.PostFilters")).Return(nil, errors.New("boom"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.mocks(m)

			got, err := m.service().ListPostsByInterest(context.Background(), tt.user)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
			} else {
				assert.NoError(t, err)
				assert.Len(t, got, tt.wantLen)
			}
			m.assertExpectations(t)
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	existing := &model.Post{ID: 5, UserID: 1, CategoryList: "tech", Title: "old", Content: "old"}
	sameCategory := &model.UpdatePostDTO{CategoryList: "tech", Title: "new", Content: "new"}
	newCategory := &model.UpdatePostDTO{CategoryList: "life", Title: "new", Content: "new"}

	beginTx := func(m *serviceMocks) {
		m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
		m.tx.On("PostRepository").Return(m.postRepo)
		m.tx.On("CategoryRepository").Return(m.categoryRepo)
	}

	tests := []struct {
		name        string
		userID      int64
		update      *model.UpdatePostDTO
		mocks       func(m *serviceMocks)
		wantErrType error
	}{
		{
			name:   "Success without category change",
			userID: 1,
			update: sameCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.postRepo.On("Update", mock.Anything, int64(5), int64(1), sameCategory).Return(&model.Post{ID: 5}, nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
		},
		{
			name:   "Success with category change",
			userID: 1,
			update: newCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.postRepo.On("Update", mock.Anything, int64(5), int64(1), newCategory).Return(&model.Post{ID: 5}, nil)
				m.categoryRepo.On("UpdateByPost", mock.Anything, int64(5), "life").Return(nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
		},
		{
			name:   "Missing category row is recreated",
			userID: 1,
			update: newCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.postRepo.On("Update", mock.Anything, int64(5), int64(1), newCategory).Return(&model.Post{ID: 5}, nil)
				m.categoryRepo.On("UpdateByPost", mock.Anything, int64(5), "life").Return(custom_errors.ErrCategoryNotFound)
				m.categoryRepo.On("Create", mock.Anything, &model.Category{PostID: 5, CategoryList: "life"}).
					Return(&model.Category{ID: 3, PostID: 5, CategoryList: "life"}, nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
		},
		{
			name:   "Not found wins over missing fields",
			userID: 1,
			update: &model.UpdatePostDTO{},
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, custom_errors.ErrPostNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name:   "Missing fields",
			userID: 1,
			update: &model.UpdatePostDTO{Title: "only title"},
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostValidation,
		},
		{
			name:   "Not the author",
			userID: 2,
			update: sameCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name:   "Owner scoped update touched nothing",
			userID: 1,
			update: sameCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.postRepo.On("Update", mock.Anything, int64(5), int64(1), sameCategory).Return(nil, custom_errors.ErrPostNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name:   "Category update failure rolls back",
			userID: 1,
			update: newCategory,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.postRepo.On("Update", mock.Anything, int64(5), int64(1), newCategory).Return(&model.Post{ID: 5}, nil)
				m.categoryRepo.On("UpdateByPost", mock.Anything, int64(5), "life").Return(custom_errors.ErrCategoryUpdateFailed)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrCategoryUpdateFailed,
		},
		{
			name:   "Transaction begin error",
			userID: 1,
			update: sameCategory,
			mocks: func(m *serviceMocks) {
				m.uow.On("Begin", mock.Anything).Return(nil, errors.New("db error"))
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.mocks(m)

			err := m.service().UpdatePost(context.Background(), tt.userID, 5, tt.update)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	existing := &model.Post{ID: 5, UserID: 1, CategoryList: "tech"}

	beginTx := func(m *serviceMocks) {
		m.uow.On("Begin", mock.Anything).Return(m.tx, nil)
		m.tx.On("PostRepository").Return(m.postRepo)
		m.tx.On("CategoryRepository").Return(m.categoryRepo)
	}

	tests := []struct {
		name        string
		userID      int64
		mocks       func(m *serviceMocks)
		wantErrType error
	}{
		{
			name:   "Success",
			userID: 1,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.categoryRepo.On("DeleteByPost", mock.Anything, int64(5)).Return(nil)
				m.postRepo.On("Delete", mock.Anything, int64(5), int64(1)).Return(nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
		},
		{
			name:   "Missing category row is tolerated",
			userID: 1,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.categoryRepo.On("DeleteByPost", mock.Anything, int64(5)).Return(custom_errors.ErrCategoryNotFound)
				m.postRepo.On("Delete", mock.Anything, int64(5), int64(1)).Return(nil)
				m.tx.On("Commit", mock.Anything).Return(nil)
			},
		},
		{
			name:   "Not found",
			userID: 1,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(nil, custom_errors.ErrPostNotFound)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrPostNotFound,
		},
		{
			name:   "Not the author",
			userID: 2,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrForbidden,
		},
		{
			name:   "Category delete failure",
			userID: 1,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.categoryRepo.On("DeleteByPost", mock.Anything, int64(5)).Return(custom_errors.ErrCategoryDeleteFailed)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrCategoryDeleteFailed,
		},
		{
			name:   "Post delete store error rolls back",
			userID: 1,
			mocks: func(m *serviceMocks) {
				beginTx(m)
				m.postRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
				m.categoryRepo.On("DeleteByPost", mock.Anything, int64(5)).Return(nil)
				m.postRepo.On("Delete", mock.Anything, int64(5), int64(1)).Return(custom_errors.ErrDatabaseQuery)
				m.tx.On("Rollback", mock.Anything).Return(nil)
			},
			wantErrType: custom_errors.ErrDatabaseQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newServiceMocks()
			tt.mocks(m)

			err := m.service().DeletePost(context.Background(), tt.userID, 5)

			if tt.wantErrType != nil {
				assert.ErrorIs(t, err, tt.wantErrType)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}
