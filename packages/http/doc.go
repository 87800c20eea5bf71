// Package http provides the HTTP transport for request execution.
//
// It defines the Transport interface the interpreter sends requests through,
// plus a concrete Client built on the standard library's http package with:
//   - Configurable timeouts
//   - Redirect handling
//   - Proxy and TLS verification settings
//   - Ordered request headers with duplicate keys preserved
package http
