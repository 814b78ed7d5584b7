package store

import (
	"context"
	"net/http"
)

type exchangeKey struct{}

// exchange gives backends that live in cookies access to the current HTTP
// request and response.
type exchange struct {
	w       http.ResponseWriter
	r       *http.Request
	pending map[string]*http.Cookie
}

// WithExchange attaches the request and response writer to ctx. The cookie
// backend requires it; other backends ignore it.
func WithExchange(ctx context.Context, w http.ResponseWriter, r *http.Request) context.Context {
	return context.WithValue(ctx, exchangeKey{}, &exchange{w: w, r: r, pending: make(map[string]*http.Cookie)})
}

func exchangeFrom(ctx context.Context) (*exchange, bool) {
	ex, ok := ctx.Value(exchangeKey{}).(*exchange)
	return ex, ok && ex != nil
}

// cookie returns a cookie set earlier in this exchange, falling back to
// the request.
func (ex *exchange) cookie(name string) (*http.Cookie, bool) {
	if c, ok := ex.pending[name]; ok {
		return c, c.MaxAge >= 0
	}
	if ex.r == nil {
		return nil, false
	}
	c, err := ex.r.Cookie(name)
	if err != nil {
		return nil, false
	}
	return c, true
}

func (ex *exchange) setCookie(c *http.Cookie) {
	ex.pending[c.Name] = c
	if ex.w != nil {
		http.SetCookie(ex.w, c)
	}
}
