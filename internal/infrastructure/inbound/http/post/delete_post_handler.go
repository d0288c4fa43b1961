package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/inbound/http/middleware"

	"github.com/gin-gonic/gin"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, userID int64, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
	log         ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{postService: postService, log: log}
}

func (h *DeletePostHandler) DeletePost(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "authentication required"})
		return
	}

	id, ok := parsePostID(c.Param("postId"))
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "post not found"})
		return
	}

	err := h.postService.DeletePost(c.Request.Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{Message: "post not found"})
		case errors.Is(err, custom_errors.ErrForbidden):
			c.JSON(http.StatusForbidden, MessageResponse{Message: "user is not the author"})
		default:
			h.log.Warn("Failed to delete post",
				slog.Int64("post_id", id),
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to delete post"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
