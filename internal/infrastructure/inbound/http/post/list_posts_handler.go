package post_http

import (
	"context"
	"log/slog"
	"net/http"

	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostLister interface {
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error)
}

type ListPostsHandler struct {
	postService PostLister
	validate    *validator.Validate
	log         ports.Logger
}

func NewListPostsHandler(postService PostLister, validate *validator.Validate, log ports.Logger) *ListPostsHandler {
	return &ListPostsHandler{
		postService: postService,
		validate:    validate,
		log:         log,
	}
}

type ListPostsRequestInternal struct {
	Limit  *int `form:"limit" validate:"omitempty,gt=0,lte=100"`
	Offset *int `form:"offset" validate:"omitempty,gte=0"`
}

type ListPostsResponse struct {
	PostList []FeedItem `json:"postList"`
}

func (h *ListPostsHandler) ListPosts(c *gin.Context) {
	var req ListPostsRequestInternal
	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Debug("Failed to bind list posts query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid pagination parameters"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Debug("List posts request validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid pagination parameters"})
		return
	}

	posts, err := h.postService.ListPosts(c.Request.Context(), &model.PostFilters{
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		h.log.Warn("Failed to list posts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to fetch posts"})
		return
	}

	if len(posts) == 0 {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "no posts to display"})
		return
	}

	c.JSON(http.StatusOK, ListPostsResponse{PostList: toFeed(posts)})
}
