package repository

import (
	"context"
	"io"

	"github.com/sakibullah2006/dmart/internal/domain/model"
)

// 画像アップロード（multipart）
type ImageUpload struct {
	FileName     string
	ContentType  string
	Body         io.Reader
	IsPrimary    bool
	DisplayOrder int
	AltText      string
}

type ImageUpdate struct {
	IsPrimary    *bool   `json:"isPrimary,omitempty"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
	AltText      *string `json:"altText,omitempty"`
}

// 商品画像の窓口
type MediaRepository interface {
	ListImages(ctx context.Context, productID string) ([]model.ProductImage, error)
	Upload(ctx context.Context, productID string, in ImageUpload) (model.ProductImage, error)
	UpdateImage(ctx context.Context, publicID string, in ImageUpdate) (model.ProductImage, error)
	DeleteImage(ctx context.Context, publicID string) error
	DeleteAll(ctx context.Context, productID string) error

	//画像本体。見つからなければErrNotFound
	OpenImage(ctx context.Context, publicID string) (*model.ImageStream, error)

	//画像本体かメタデータのどちらかを返す
	OpenPrimaryImage(ctx context.Context, productID string) (*model.ImageStream, *model.ProductImage, error)
}
