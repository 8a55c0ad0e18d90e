package model

// 商品属性（色、サイズなど）
type Attribute struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// 属性の選択肢
type AttributeOption struct {
	ID          string `json:"id"`
	AttributeID string `json:"attributeId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}
