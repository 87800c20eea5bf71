package http

import "context"

// Transport sends a single HTTP request and returns its response. The
// interpreter depends on this interface rather than on a concrete client, so
// tests can substitute a recording fake and the CLI can inject a configured
// Client.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
