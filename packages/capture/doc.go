// Package capture extracts values from HTTP responses for use in subsequent
// requests.
//
// Each @name = path rule after a request binds a value from that request's
// response: a dotted JSON path selects from the body, and an empty path binds
// the raw body text. Extracted values flow back into the shared variable
// environment, so later requests can reference them as {{name}}.
package capture
