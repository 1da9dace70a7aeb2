// Package middleware holds the Echo middleware shared by every route:
// request ids, request-scoped loggers, access logs, New Relic tracing,
// Prometheus request metrics, per-IP rate limiting and bearer token auth.
package middleware
