package post_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	model "board-post-service/internal/domain/models"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/domain/ports/output/upload"
	"board-post-service/internal/infrastructure/inbound/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService PostCreator
	uploader    upload.Uploader
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, uploader upload.Uploader, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		uploader:    uploader,
		validate:    validate,
		log:         log,
	}
}

type CreatePostRequestInternal struct {
	CategoryList string `form:"categoryList" json:"categoryList"`
	Title        string `form:"title" json:"title" validate:"required"`
	Content      string `form:"content" json:"content" validate:"required"`
}

func (h *CreatePostHandler) CreatePost(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "authentication required"})
		return
	}
	img := middleware.UploadedLocation(c)

	var req CreatePostRequestInternal
	if err := c.ShouldBind(&req); err != nil {
		h.log.Debug("Failed to bind create post request", slog.String("error", err.Error()))
		h.discardUpload(c.Request.Context(), img)
		c.JSON(http.StatusPreconditionFailed, MessageResponse{Message: "invalid data format"})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Debug("Create post request validation failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		h.discardUpload(c.Request.Context(), img)
		c.JSON(http.StatusPreconditionFailed, MessageResponse{Message: "missing title or content"})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), &model.CreatePostDTO{
		UserID:       user.ID,
		Nickname:     user.Nickname,
		CategoryList: req.CategoryList,
		Title:        req.Title,
		Content:      req.Content,
		Img:          img,
	})
	if err != nil {
		h.discardUpload(c.Request.Context(), img)
		if errors.Is(err, custom_errors.ErrPostValidation) {
			c.JSON(http.StatusPreconditionFailed, MessageResponse{Message: "missing title or content"})
			return
		}
		h.log.Warn("Failed to create post", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusPreconditionFailed, MessageResponse{Message: "invalid data format"})
		return
	}

	h.log.Debug("Post created via HTTP", slog.Int64("post_id", post.ID), slog.Int64("user_id", user.ID))
	c.JSON(http.StatusCreated, MessageResponse{Message: "post created"})
}

// discardUpload is best effort; the request has already failed.
func (h *CreatePostHandler) discardUpload(ctx context.Context, img *string) {
	if img == nil {
		return
	}
	if err := h.uploader.Remove(ctx, *img); err != nil {
		h.log.Warn("Failed to remove orphaned upload", slog.String("location", *img), slog.String("error", err.Error()))
	}
}
