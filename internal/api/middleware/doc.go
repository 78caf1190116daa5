// Package middleware provides gin middleware for the binary manager API:
// CORS, per-IP rate limiting, and request ID correlation.
package middleware
