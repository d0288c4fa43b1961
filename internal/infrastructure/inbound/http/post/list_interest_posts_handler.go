package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/inbound/http/middleware"

	"github.com/gin-gonic/gin"
)

type InterestPostLister interface {
	ListPostsByInterest(ctx context.Context, user *model.User) ([]*model.Post, error)
}

type ListInterestPostsHandler struct {
	postService InterestPostLister
	log         ports.Logger
}

func NewListInterestPostsHandler(postService InterestPostLister, log ports.Logger) *ListInterestPostsHandler {
	return &ListInterestPostsHandler{postService: postService, log: log}
}

type ListInterestPostsResponse struct {
	CategoryPosts []FeedItem `json:"categoryPosts"`
}

func (h *ListInterestPostsHandler) ListInterestPosts(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "authentication required"})
		return
	}

	posts, err := h.postService.ListPostsByInterest(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, custom_errors.ErrInterestNotSet) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: "no interest configured; set it in your profile"})
			return
		}
		h.log.Warn("Failed to list posts by interest",
			slog.Int64("user_id", user.ID),
			slog.String("interest", user.Interest),
			slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, ListInterestPostsResponse{CategoryPosts: toFeed(posts)})
}
