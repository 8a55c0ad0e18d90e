package repository

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// リモートAPIが2xx以外を返したときのエラー
// Messageはレスポンスのmessage/detail/errorのどれか。
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api %d: %s", e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// 401/403
func IsUnauthenticated(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && (ae.Status == 401 || ae.Status == 403)
}
