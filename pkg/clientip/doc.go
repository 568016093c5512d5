// Package clientip resolves the originating client address of an HTTP request
// behind Cloudflare or a reverse proxy and exposes it to handlers and logs.
//
// Headers are checked in the order CF-Connecting-IP, X-Forwarded-For (first
// valid hop), X-Real-IP, then RemoteAddr. Values are validated and normalised;
// IPv4-mapped IPv6 addresses are reported in IPv4 form.
//
// These headers are client controlled unless a trusted proxy overwrites them,
// so the result is suitable for audit logs but not for access control.
package clientip
