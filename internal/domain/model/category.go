package model

type Category struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Slug             string  `json:"slug,omitempty"`
	ParentCategoryID *string `json:"parentCategoryId,omitempty"`
}
