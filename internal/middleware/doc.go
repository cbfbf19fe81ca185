// Package middleware adapts the method call interceptor to net/http.
// It wraps a handler so each request is logged as one intercepted call,
// alongside plain request/completion lines with client, path and timing.
package middleware
