package model

import "context"

type sessionKey struct{}

// リモートのセッションCookie値をcontextに載せる
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

func SessionTokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(sessionKey{}).(string)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}
