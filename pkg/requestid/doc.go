// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses the client's X-Request-ID header when it is at most 128
// characters of [a-zA-Z0-9_-]; otherwise it generates a UUID. The ID is stored
// in the request context, echoed in the response header and picked up by the
// logger through LoggerExtractor, so every record written while serving the
// request can be correlated.
package requestid
