package model

import "strings"

// 配送先・請求先住所
// AddressLine2以外は必須。
type Address struct {
	AddressLine1 string `json:"addressLine1" form:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty" form:"addressLine2"`
	City         string `json:"city" form:"city" validate:"required"`
	State        string `json:"state" form:"state" validate:"required"`
	PostalCode   string `json:"postalCode" form:"postalCode" validate:"required"`
	Country      string `json:"country" form:"country" validate:"required"`
}

// 前後の空白を落とした値を返す
func (a Address) Trimmed() Address {
	return Address{
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		Country:      strings.TrimSpace(a.Country),
	}
}
