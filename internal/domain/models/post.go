package model

import "time"

type Post struct {
	ID           int64     `json:"postId"`
	UserID       int64     `json:"userId"`
	Nickname     string    `json:"nickname"`
	CategoryList string    `json:"categoryList"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Img          *string   `json:"img"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
