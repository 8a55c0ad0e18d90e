package model

// ページング結果（pageは0始まり）
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 0
}

func (p Page[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}
