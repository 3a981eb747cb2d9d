package memory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// CookieMemory keeps the remembered location in a browser cookie. It is bound
// to a single request/response pair.
type CookieMemory struct {
	w http.ResponseWriter
	r *http.Request
}

// NewCookieMemory binds a CookieMemory to one HTTP exchange
func NewCookieMemory(w http.ResponseWriter, r *http.Request) *CookieMemory {
	return &CookieMemory{w: w, r: r}
}

// Load reads the cookie sent with the request
func (m *CookieMemory) Load(_ context.Context) (string, bool, error) {
	c, err := m.r.Cookie(Key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false, fmt.Errorf("decode %s cookie: %w", Key, err)
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Save sets the cookie on the response. It must run before the response
// headers are written.
func (m *CookieMemory) Save(_ context.Context, query string) error {
	c := &http.Cookie{
		Name:     Key,
		Value:    url.QueryEscape(query),
		Path:     "/",
		MaxAge:   int(Expiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if err := c.Valid(); err != nil {
		return fmt.Errorf("invalid %s cookie: %w", Key, err)
	}
	http.SetCookie(m.w, c)
	return nil
}

var _ LocationMemory = (*CookieMemory)(nil)
