package model

import (
	"io"
	"net/url"
	"strings"
)

// 商品画像のメタデータ
type ProductImage struct {
	PublicID        string        `json:"publicId,omitempty"`
	ProductPublicID string        `json:"productPublicId,omitempty"`
	FileName        string        `json:"fileName,omitempty"`
	FileURL         string        `json:"fileUrl,omitempty"`
	ImageURL        string        `json:"imageUrl,omitempty"`
	IsPrimary       bool          `json:"isPrimary"`
	DisplayOrder    int           `json:"displayOrder"`
	AltText         string        `json:"altText,omitempty"`
	FileMetadata    *FileMetadata `json:"fileMetadata,omitempty"`
}

type FileMetadata struct {
	PublicID         string `json:"publicId,omitempty"`
	FileName         string `json:"fileName,omitempty"`
	OriginalFileName string `json:"originalFileName,omitempty"`
	FileURL          string `json:"fileUrl,omitempty"`
	ContentType      string `json:"contentType,omitempty"`
	FileSize         int64  `json:"fileSize,omitempty"`
}

// ローカルのプロキシ経由で配信する画像の参照
type MediaReference struct {
	PublicID  string `json:"publicId"`
	ServedURL string `json:"servedUrl"`
}

const imageProxyPrefix = "/api/images/"

func ImageProxyURL(publicID string) string {
	return imageProxyPrefix + url.PathEscape(publicID)
}

// publicIdを優先し、無いときだけURLの /images/{id} から取り出す
func ResolveMediaReference(img ProductImage) (MediaReference, bool) {
	id := strings.TrimSpace(img.PublicID)
	if id == "" && img.FileMetadata != nil {
		id = strings.TrimSpace(img.FileMetadata.PublicID)
	}
	if id == "" {
		id = publicIDFromURL(img.ImageURL)
	}
	if id == "" {
		id = publicIDFromURL(img.FileURL)
	}
	if id == "" {
		return MediaReference{}, false
	}
	return MediaReference{PublicID: id, ServedURL: ImageProxyURL(id)}, true
}

func publicIDFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	path := raw
	if u, err := url.Parse(raw); err == nil {
		path = u.Path
	}

	idx := strings.LastIndex(path, "/images/")
	if idx < 0 {
		return ""
	}
	rest := strings.Trim(path[idx+len("/images/"):], "/")
	if rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

// 画像のバイト列（プロキシ用）
type ImageStream struct {
	Body        io.ReadCloser
	ContentType string
}
