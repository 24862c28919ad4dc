package http

import (
	"context"
	"net/http"
	"net/url"

	"paporium/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T body before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return reply(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without reading the body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

// QueryHandler hands fn the parsed query string. Filter reads are a pure
// function of it, so handlers never touch the request.
func QueryHandler(fn func(ctx context.Context, q url.Values) (any, error)) Handler {
	return JSONHandlerNoBody(func(r *http.Request) (any, error) {
		return fn(r.Context(), r.URL.Query())
	})
}

// reply writes a returned Response as is and wraps anything else in OK
func reply(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
