package model

type PostFilters struct {
	CategoryList *string
	Limit        *int
	Offset       *int
}
