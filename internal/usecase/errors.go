package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	repo "github.com/sakibullah2006/dmart/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 入力チェックのエラー（項目ごとのメッセージ付き）
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// 画面に出すメッセージ
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if ve, ok := AsValidationError(err); ok {
		return ve.Message
	}
	if he, ok := AsHTTPError(err); ok {
		return he.Message
	}
	if ae, ok := repo.AsAPIError(err); ok {
		return ae.Message
	}
	return "Something went wrong. Please try again."
}

// リモートのエラーをHTTPErrorに変換する
// 4xxのメッセージはそのまま、5xxと通信エラーは502。
func fromRemote(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	ae, ok := repo.AsAPIError(err)
	if !ok {
		return NewHTTPError(http.StatusBadGateway, fallback)
	}

	msg := ae.Message
	if msg == "" {
		msg = fallback
	}
	switch {
	case ae.Status == http.StatusUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, "Authentication required")
	case ae.Status >= 400 && ae.Status < 500:
		return NewHTTPError(ae.Status, msg)
	default:
		return NewHTTPError(http.StatusBadGateway, msg)
	}
}
