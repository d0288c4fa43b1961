package model

import "time"

// Category mirrors the tag of a post and lives and dies with it.
type Category struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"postId"`
	CategoryList string    `json:"categoryList"`
	CreatedAt    time.Time `json:"createdAt"`
}
