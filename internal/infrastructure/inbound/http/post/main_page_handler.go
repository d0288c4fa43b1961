package post_http

import (
	"log/slog"
	"net/http"

	ports "board-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

// MainPageHandler serves the landing page data; an empty board is still a page.
type MainPageHandler struct {
	postService PostLister
	log         ports.Logger
}

func NewMainPageHandler(postService PostLister, log ports.Logger) *MainPageHandler {
	return &MainPageHandler{postService: postService, log: log}
}

type MainPageResponse struct {
	Data ListPostsResponse `json:"data"`
}

func (h *MainPageHandler) MainPage(c *gin.Context) {
	posts, err := h.postService.ListPosts(c.Request.Context(), nil)
	if err != nil {
		h.log.Warn("Failed to load main page posts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, MainPageResponse{Data: ListPostsResponse{PostList: toFeed(posts)}})
}
