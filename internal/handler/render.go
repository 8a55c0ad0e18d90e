package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/middleware"
	"github.com/sakibullah2006/dmart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// 画面に渡す共通データ
type Page struct {
	Title   string
	Viewer  *model.User
	Error   string
	Fields  map[string]string
	Notice  string
	Data    any
	Refresh *Refresh
}

// 一定時間後に別ページへ移動させる
type Refresh struct {
	Seconds int
	URL     string
}

type addressForm struct {
	Address model.Address
	Fields  map[string]string
}

func newAddressForm(a model.Address, fields map[string]string) addressForm {
	return addressForm{Address: a, Fields: fields}
}

// Renderer はechoのRenderer（html/template）
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money":       formatMoney,
		"imageURL":    primaryImageURL,
		"query":       url.QueryEscape,
		"add":         func(a, b int) int { return a + b },
		"addressForm": newAddressForm,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func formatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func primaryImageURL(p model.Product) string {
	return "/api/products/" + url.PathEscape(p.ID) + "/images/primary"
}

// 画面を描画する（ヒントのユーザーを載せる）
func render(c echo.Context, status int, name string, p Page) error {
	if p.Viewer == nil {
		if u, ok := middleware.ViewerFrom(c); ok {
			p.Viewer = &u
		}
	}
	return c.Render(status, name, p)
}

// エラーをページのバナーにする
func withError(p Page, err error) Page {
	if err == nil {
		return p
	}
	p.Error = usecase.UserMessage(err)
	if ve, ok := usecase.AsValidationError(err); ok {
		p.Fields = ve.Fields
	}
	return p
}
