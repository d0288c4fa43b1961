package post_http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/inbound/http/middleware"

	"github.com/gin-gonic/gin"
)

type PostUpdater interface {
	UpdatePost(ctx context.Context, userID int64, id int64, post *model.UpdatePostDTO) error
}

type UpdatePostHandler struct {
	postService PostUpdater
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostUpdater, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{postService: postService, log: log}
}

func (h *UpdatePostHandler) UpdatePost(c *gin.Context) {
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

	// A body that fails to decode is sent on empty so a missing post still
	// answers 404 before the format error is reported.
	var req model.UpdatePostDTO
	bindErr := c.ShouldBind(&req)
	if errors.Is(bindErr, io.EOF) {
		bindErr = nil
	}
	if bindErr != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(bindErr, &typeErr) {
			h.log.Warn("Update post field has the wrong type",
				slog.Int64("post_id", id),
				slog.String("field", typeErr.Field),
				slog.String("got", typeErr.Value))
		} else {
			h.log.Debug("Failed to bind update post body", slog.Int64("post_id", id), slog.String("error", bindErr.Error()))
		}
		req = model.UpdatePostDTO{}
	}

	err := h.postService.UpdatePost(c.Request.Context(), user.ID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			c.JSON(http.StatusNotFound, MessageResponse{Message: "post not found"})
		case errors.Is(err, custom_errors.ErrPostValidation) && bindErr != nil:
			c.JSON(http.StatusPreconditionFailed, MessageResponse{Message: "invalid data format"})
		case errors.Is(err, custom_errors.ErrPostValidation):
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "category, title and content are required"})
		case errors.Is(err, custom_errors.ErrForbidden):
			c.JSON(http.StatusForbidden, MessageResponse{Message: "user is not the author"})
		default:
			h.log.Warn("Failed to update post",
				slog.Int64("post_id", id),
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to update post"})
		}
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "post updated"})
}
