package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.uber.org/zap"
)

const (
	msgImageNotFound   = "Image not found"
	msgNoPrimaryImage  = "No primary image found"
	msgImageFetchError = "Failed to fetch image"
	MaxUploadBytes     = 10 << 20
)

var ErrUploadTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, "file too large (max 10MB)")

// 画像のプロキシと管理
type MediaUsecase struct {
	media  repo.MediaRepository
	logger *zap.Logger
}

func NewMediaUsecase(media repo.MediaRepository, logger *zap.Logger) *MediaUsecase {
	return &MediaUsecase{media: media, logger: orNop(logger)}
}

// OpenImage は画像本体を返す。呼び出し側でBodyをCloseする。
// リモートが2xx以外なら404、通信エラーは500。
func (u *MediaUsecase) OpenImage(ctx context.Context, publicID string) (*model.ImageStream, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, NewHTTPError(http.StatusNotFound, msgImageNotFound)
	}
	s, err := u.media.OpenImage(ctx, publicID)
	if err != nil {
		return nil, u.imageError(err, msgImageNotFound, publicID)
	}
	return s, nil
}

// OpenPrimaryImage は商品のメイン画像を返す。
// 画像本体、メタデータ経由、画像一覧の順に試す。
func (u *MediaUsecase) OpenPrimaryImage(ctx context.Context, productID string) (*model.ImageStream, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, NewHTTPError(http.StatusNotFound, msgNoPrimaryImage)
	}

	stream, meta, err := u.media.OpenPrimaryImage(ctx, productID)
	switch {
	case err == nil && stream != nil:
		return stream, nil
	case err == nil && meta != nil:
		return u.openReference(ctx, *meta)
	case err == nil:
		return nil, NewHTTPError(http.StatusNotFound, msgNoPrimaryImage)
	case !isRemoteMiss(err):
		return nil, u.imageError(err, msgNoPrimaryImage, productID)
	}

	// 一覧からprimary（無ければ先頭）を選ぶ
	imgs, err := u.media.ListImages(ctx, productID)
	if err != nil {
		return nil, u.imageError(err, msgNoPrimaryImage, productID)
	}
	img, ok := pickPrimary(imgs)
	if !ok {
		return nil, NewHTTPError(http.StatusNotFound, msgNoPrimaryImage)
	}
	return u.openReference(ctx, img)
}

func (u *MediaUsecase) openReference(ctx context.Context, img model.ProductImage) (*model.ImageStream, error) {
	ref, ok := model.ResolveMediaReference(img)
	if !ok {
		return nil, NewHTTPError(http.StatusNotFound, msgNoPrimaryImage)
	}
	s, err := u.media.OpenImage(ctx, ref.PublicID)
	if err != nil {
		return nil, u.imageError(err, msgNoPrimaryImage, ref.PublicID)
	}
	return s, nil
}

func pickPrimary(imgs []model.ProductImage) (model.ProductImage, bool) {
	if len(imgs) == 0 {
		return model.ProductImage{}, false
	}
	for _, img := range imgs {
		if img.IsPrimary {
			return img, true
		}
	}
	return imgs[0], true
}

// リモートが応答した失敗（404含む）
func isRemoteMiss(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	_, ok := repo.AsAPIError(err)
	return ok
}

func (u *MediaUsecase) imageError(err error, notFoundMsg, id string) error {
	if isRemoteMiss(err) {
		return NewHTTPError(http.StatusNotFound, notFoundMsg)
	}
	u.logger.Error("image proxy failed", zap.String("id", id), zap.Error(err))
	return NewHTTPError(http.StatusInternalServerError, msgImageFetchError)
}

// ===== 管理者 =====

// 画面用にプロキシURLを付けた画像
type ImageView struct {
	model.ProductImage
	ServedURL string `json:"servedUrl,omitempty"`
}

func toImageViews(imgs []model.ProductImage) []ImageView {
	out := make([]ImageView, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, toImageView(img))
	}
	return out
}

func toImageView(img model.ProductImage) ImageView {
	v := ImageView{ProductImage: img}
	if ref, ok := model.ResolveMediaReference(img); ok {
		v.ServedURL = ref.ServedURL
	}
	return v
}

func (u *MediaUsecase) ListImages(ctx context.Context, productID string) ([]ImageView, error) {
	if err := requireID(productID, "invalid product id"); err != nil {
		return nil, err
	}
	imgs, err := u.media.ListImages(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return []ImageView{}, nil
	}
	if err != nil {
		return nil, fromRemote(err, "Failed to load images")
	}
	return toImageViews(imgs), nil
}

func (u *MediaUsecase) Upload(ctx context.Context, productID string, in repo.ImageUpload) (ImageView, error) {
	if err := requireID(productID, "invalid product id"); err != nil {
		return ImageView{}, err
	}
	if in.Body == nil || strings.TrimSpace(in.FileName) == "" {
		return ImageView{}, NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if in.ContentType != "" && !strings.HasPrefix(in.ContentType, "image/") {
		return ImageView{}, NewHTTPError(http.StatusBadRequest, "only image files are allowed")
	}
	if in.DisplayOrder < 0 {
		return ImageView{}, NewHTTPError(http.StatusBadRequest, "displayOrder must be >= 0")
	}
	body, err := readUpload(in.Body)
	if err != nil {
		return ImageView{}, err
	}
	in.Body = bytes.NewReader(body)

	img, err := u.media.Upload(ctx, productID, in)
	if err != nil {
		return ImageView{}, fromRemote(err, "Failed to upload image")
	}
	return toImageView(img), nil
}

// 上限+1バイトまで読み、超えたら413
func readUpload(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid file")
	}
	if len(body) > MaxUploadBytes {
		return nil, ErrUploadTooLarge
	}
	return body, nil
}

func (u *MediaUsecase) UpdateImage(ctx context.Context, publicID string, in repo.ImageUpdate) (ImageView, error) {
	if err := requireID(publicID, "invalid image id"); err != nil {
		return ImageView{}, err
	}
	if in.DisplayOrder != nil && *in.DisplayOrder < 0 {
		return ImageView{}, NewHTTPError(http.StatusBadRequest, "displayOrder must be >= 0")
	}
	img, err := u.media.UpdateImage(ctx, publicID, in)
	if err != nil {
		return ImageView{}, fromRemote(err, "Failed to update image")
	}
	return toImageView(img), nil
}

func (u *MediaUsecase) DeleteImage(ctx context.Context, publicID string) error {
	if err := requireID(publicID, "invalid image id"); err != nil {
		return err
	}
	if err := u.media.DeleteImage(ctx, publicID); err != nil {
		return fromRemote(err, "Failed to delete image")
	}
	return nil
}

func (u *MediaUsecase) DeleteAll(ctx context.Context, productID string) error {
	if err := requireID(productID, "invalid product id"); err != nil {
		return err
	}
	if err := u.media.DeleteAll(ctx, productID); err != nil {
		return fromRemote(err, "Failed to delete images")
	}
	return nil
}
