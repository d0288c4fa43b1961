package post_http

import (
	"strconv"
	"time"

	model "board-post-service/internal/domain/models"
)

// FeedItem is the public projection of a post in feeds; it never carries the
// owner id.
type FeedItem struct {
	PostID       int64   `json:"postId"`
	Nickname     string  `json:"nickname"`
	CategoryList string  `json:"categoryList"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Img          *string `json:"img"`
}

type PostDetail struct {
	PostID       int64     `json:"postId"`
	UserID       int64     `json:"userId"`
	CategoryList string    `json:"categoryList"`
	Nickname     string    `json:"nickname"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Img          *string   `json:"img"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toFeed(posts []*model.Post) []FeedItem {
	feed := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		feed = append(feed, FeedItem{
			PostID:       p.ID,
			Nickname:     p.Nickname,
			CategoryList: p.CategoryList,
			Title:        p.Title,
			Content:      p.Content,
			Img:          p.Img,
		})
	}
	return feed
}

func toDetail(p *model.Post) PostDetail {
	return PostDetail{
		PostID:       p.ID,
		UserID:       p.UserID,
		CategoryList: p.CategoryList,
		Nickname:     p.Nickname,
		Title:        p.Title,
		Content:      p.Content,
		Img:          p.Img,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// parsePostID returns false for anything that is not a positive integer.
func parsePostID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
