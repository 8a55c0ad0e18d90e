package model_test

import (
	"testing"

	"github.com/sakibullah2006/dmart/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestResolveMediaReference(t *testing.T) {
	cases := []struct {
		name   string
		img    model.ProductImage
		wantID string
		wantOK bool
	}{
		{
			name:   "構造化されたpublicIdを優先",
			img:    model.ProductImage{PublicID: "abc", ImageURL: "http://x/api/files/images/zzz"},
			wantID: "abc",
			wantOK: true,
		},
		{
			name:   "メタデータのpublicId",
			img:    model.ProductImage{FileMetadata: &model.FileMetadata{PublicID: "meta-1"}},
			wantID: "meta-1",
			wantOK: true,
		},
		{
			name:   "imageUrlから取り出す",
			img:    model.ProductImage{ImageURL: "http://localhost:8080/api/files/images/img-42"},
			wantID: "img-42",
			wantOK: true,
		},
		{
			name:   "相対のfileUrl",
			img:    model.ProductImage{FileURL: "/files/images/rel-7/"},
			wantID: "rel-7",
			wantOK: true,
		},
		{
			name:   "解決できない",
			img:    model.ProductImage{FileURL: "https://cdn.example.com/a/b.png"},
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := model.ResolveMediaReference(tc.img)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, ref.PublicID)
				assert.Equal(t, "/api/images/"+tc.wantID, ref.ServedURL)
			}
		})
	}
}
