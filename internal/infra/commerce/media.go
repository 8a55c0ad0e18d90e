package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"
)

const defaultImageContentType = "image/jpeg"

type mediaRepository struct {
	c *Client
}

func NewMediaRepository(c *Client) repo.MediaRepository {
	return &mediaRepository{c: c}
}

func (r *mediaRepository) ListImages(ctx context.Context, productID string) ([]model.ProductImage, error) {
	var out []model.ProductImage
	err := r.c.doJSON(ctx, http.MethodGet, "/files/products/"+pathID(productID)+"/images", nil, nil, &out, "Failed to fetch product images")
	return out, notFound(err)
}

// multipart: file, isPrimary, displayOrder, altText
func (r *mediaRepository) Upload(ctx context.Context, productID string, in repo.ImageUpload) (model.ProductImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, in.FileName))
	ct := in.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return model.ProductImage{}, err
	}
	if _, err := io.Copy(part, in.Body); err != nil {
		return model.ProductImage{}, err
	}

	_ = mw.WriteField("isPrimary", strconv.FormatBool(in.IsPrimary))
	_ = mw.WriteField("displayOrder", strconv.Itoa(in.DisplayOrder))
	if alt := strings.TrimSpace(in.AltText); alt != "" {
		_ = mw.WriteField("altText", alt)
	}
	if err := mw.Close(); err != nil {
		return model.ProductImage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.c.baseURL+"/files/products/"+pathID(productID)+"/images", &buf)
	if err != nil {
		return model.ProductImage{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	r.c.attachSession(ctx, req)

	resp, err := r.c.do(req)
	if err != nil {
		return model.ProductImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.ProductImage{}, r.c.apiError(req, resp, "Failed to upload image")
	}

	var img model.ProductImage
	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil && err != io.EOF {
		return model.ProductImage{}, err
	}
	return img, nil
}

func (r *mediaRepository) UpdateImage(ctx context.Context, publicID string, in repo.ImageUpdate) (model.ProductImage, error) {
	var img model.ProductImage
	err := r.c.doJSON(ctx, http.MethodPatch, "/files/images/"+pathID(publicID), nil, in, &img, "Failed to update image")
	return img, notFound(err)
}

func (r *mediaRepository) DeleteImage(ctx context.Context, publicID string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/files/images/"+pathID(publicID), nil, nil, nil, "Failed to delete image")
	return notFound(err)
}

func (r *mediaRepository) DeleteAll(ctx context.Context, productID string) error {
	err := r.c.doJSON(ctx, http.MethodDelete, "/files/products/"+pathID(productID)+"/images", nil, nil, nil, "Failed to delete product images")
	return notFound(err)
}

// 呼び出し側でBodyをCloseする
func (r *mediaRepository) OpenImage(ctx context.Context, publicID string) (*model.ImageStream, error) {
	resp, err := r.open(ctx, "/files/images/"+pathID(publicID))
	if err != nil {
		return nil, err
	}
	return toStream(resp), nil
}

func (r *mediaRepository) OpenPrimaryImage(ctx context.Context, productID string) (*model.ImageStream, *model.ProductImage, error) {
	resp, err := r.open(ctx, "/files/products/"+pathID(productID)+"/images/primary")
	if err != nil {
		return nil, nil, err
	}

	// JSONならメタデータ、それ以外は画像本体
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		defer resp.Body.Close()
		var img model.ProductImage
		if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
			return nil, nil, fmt.Errorf("decode primary image: %w", err)
		}
		return nil, &img, nil
	}
	return toStream(resp), nil, nil
}

func (r *mediaRepository) open(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	r.c.attachSession(ctx, req)

	resp, err := r.c.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, notFound(r.c.apiError(req, resp, "Failed to fetch image"))
	}
	return resp, nil
}

func toStream(resp *http.Response) *model.ImageStream {
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = defaultImageContentType
	}
	return &model.ImageStream{Body: resp.Body, ContentType: ct}
}
