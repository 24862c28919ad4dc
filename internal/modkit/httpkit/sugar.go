package httpkit

import (
	"context"
	"net/http"
	"net/url"

	phttp "paporium/internal/platform/net/http"
)

// Get registers a no-body handler
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// GetQuery registers a handler that reads only the query string
func GetQuery(r Router, path string, h func(context.Context, url.Values) (any, error)) {
	r.Get(path, phttp.QueryHandler(h))
}

// PostJSON mounts a JSON body handler under POST; the body is decoded and validated first
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
