package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

type PostGetter interface {
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
}

type GetPostHandler struct {
	postService PostGetter
	log         ports.Logger
}

func NewGetPostHandler(postService PostGetter, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{postService: postService, log: log}
}

type GetPostResponse struct {
	Detail PostDetail `json:"Detail"`
}

func (h *GetPostHandler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c.Param("postId"))
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "post not found"})
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, MessageResponse{Message: "post not found"})
			return
		}
		h.log.Warn("Failed to get post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, GetPostResponse{Detail: toDetail(post)})
}
