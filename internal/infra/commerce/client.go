package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sakibullah2006/dmart/internal/domain/model"
	repo "github.com/sakibullah2006/dmart/internal/repository"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// エラーボディの読み取り上限
const maxErrorBody = 64 << 10

// Client はリモートのコマースAPIを呼ぶ
// セッションCookieはctx（model.WithSessionToken）から付ける。
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a commerce API client
func NewClient(baseURL, cookieName string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cookieName: cookieName,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

func (c *Client) CookieName() string {
	return c.cookieName
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.attachSession(ctx, req)
	return req, nil
}

func (c *Client) attachSession(ctx context.Context, req *http.Request) {
	if tok, ok := model.SessionTokenFrom(ctx); ok {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: tok})
	}
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("commerce api request failed",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
		return nil, err
	}
	return resp, nil
}

// JSONを送ってJSONを受け取る。2xx以外はAPIError。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any, fallback string) error {
	req, err := c.newRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(req, resp, fallback)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// 404はErrNotFoundにする（単体取得用）
func notFound(err error) error {
	if ae, ok := repo.AsAPIError(err); ok && ae.Status == http.StatusNotFound {
		return repo.ErrNotFound
	}
	return err
}

func (c *Client) apiError(req *http.Request, resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	ae := &repo.APIError{Status: resp.StatusCode, Message: errorMessage(body, fallback)}

	if resp.StatusCode >= 500 {
		c.logger.Warn("commerce api returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("message", ae.Message),
		)
	}
	return ae
}

// message → detail → error の順で拾う
func errorMessage(body []byte, fallback string) string {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		for _, k := range []string{"message", "detail", "error"} {
			if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return fallback
}

func pageQuery(q repo.PageQuery, defaultSort string) url.Values {
	v := url.Values{}
	v.Set("page", fmt.Sprintf("%d", q.Page))
	if q.Size > 0 {
		v.Set("size", fmt.Sprintf("%d", q.Size))
	}
	sort := q.Sort
	if sort == "" {
		sort = defaultSort
	}
	if sort != "" {
		v.Set("sort", sort)
	}
	return v
}

func pathID(id string) string {
	return url.PathEscape(id)
}
