package redirect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DefaultStatusCode is used when no status code option is given
const DefaultStatusCode = http.StatusMovedPermanently

// Decision is the outcome of HandleRequest. The zero value means no redirect.
type Decision struct {
	Redirect   bool
	Target     string
	StatusCode int
}

// Resolver decides whether an incoming request should be redirected
type Resolver struct {
	store           Store
	statusCode      int
	ignoreQueryPart bool
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithStatusCode sets the HTTP status code of issued redirects
func WithStatusCode(code int) ResolverOption {
	return func(r *Resolver) {
		r.statusCode = code
	}
}

// WithIgnoreQueryPart controls whether the query string is stripped before lookup
func WithIgnoreQueryPart(ignore bool) ResolverOption {
	return func(r *Resolver) {
		r.ignoreQueryPart = ignore
	}
}

// NewResolver creates a Resolver over the given store
func NewResolver(store Store, opts ...ResolverOption) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("redirect store is required")
	}

	r := &Resolver{
		store:           store,
		statusCode:      DefaultStatusCode,
		ignoreQueryPart: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if !ValidStatusCode(r.statusCode) {
		return nil, fmt.Errorf("invalid redirect status code %d", r.statusCode)
	}
	return r, nil
}

// ValidStatusCode reports whether code is a redirect status that carries a Location:
// 300, 301, 302, 303, 307 or 308
func ValidStatusCode(code int) bool {
	switch code {
	case http.StatusMultipleChoices, http.StatusMovedPermanently, http.StatusFound,
		http.StatusSeeOther, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// StatusCode returns the configured redirect status code
func (r *Resolver) StatusCode() int {
	return r.statusCode
}

// IgnoreQueryPart returns the configured normalization policy
func (r *Resolver) IgnoreQueryPart() bool {
	return r.ignoreQueryPart
}

// Normalize returns the lookup key for a request URL
func (r *Resolver) Normalize(requestURL string) string {
	if !r.ignoreQueryPart {
		return requestURL
	}
	if i := strings.IndexByte(requestURL, '?'); i >= 0 {
		return requestURL[:i]
	}
	return requestURL
}

// HandleRequest performs a single store lookup for the request URL.
// A store failure is returned as *StoreReadError and never reported as no redirect.
func (r *Resolver) HandleRequest(ctx context.Context, requestURL string) (Decision, error) {
	source := r.Normalize(requestURL)

	target, found, err := r.store.FindTarget(ctx, source)
	if err != nil {
		return Decision{}, &StoreReadError{Op: "lookup", Value: source, Err: err}
	}
	if !found {
		return Decision{}, nil
	}

	return Decision{
		Redirect:   true,
		Target:     target,
		StatusCode: r.statusCode,
	}, nil
}
