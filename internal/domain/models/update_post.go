package model

type UpdatePostDTO struct {
	CategoryList string `json:"categoryList" form:"categoryList" validate:"required"`
	Title        string `json:"title" form:"title" validate:"required"`
	Content      string `json:"content" form:"content" validate:"required"`
}
