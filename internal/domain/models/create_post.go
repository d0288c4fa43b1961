package model

type CreatePostDTO struct {
	UserID       int64   `json:"userId" validate:"required,gt=0"`
	Nickname     string  `json:"nickname"`
	CategoryList string  `json:"categoryList"`
	Title        string  `json:"title" validate:"required"`
	Content      string  `json:"content" validate:"required"`
	Img          *string `json:"img,omitempty"`
}
