package parser

import (
	"fmt"
	"strings"
)

// File is the root of a parsed .reqx document. Both lists preserve source
// order; that order is significant end-to-end (variables resolve
// last-write-wins across the whole document, requests execute sequentially).
type File struct {
	Path      string
	Variables []*Variable
	Requests  []*Request
}

// Variable is a document-level definition: `@name = value`. The value is the
// raw, pre-interpolation string.
type Variable struct {
	Name  string
	Value string
	Line  int
}

// Header is a single `Key: Value` line. Duplicate keys are permitted and all
// occurrences are sent.
type Header struct {
	Key   string
	Value string
	Line  int
}

// Body is a raw multi-line request body template. A request with no body
// lines has a nil Body, which is distinct from an empty string.
type Body struct {
	Raw  string
	Line int
}

// Extract is an extraction rule declared inside a request block, after the
// request line: `@name = path`. The path is evaluated against the response
// body and the result stored in the variable environment for later requests.
type Extract struct {
	Name string
	Path string
	Line int
}

// Request is one executable block. Method is empty until finalized: if the
// source omitted it, the parser infers POST when a body is present and GET
// otherwise.
type Request struct {
	Comment  string
	Method   Method
	URL      string
	Headers  []*Header
	Body     *Body
	Extracts []*Extract
	Line     int
}

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// ParseMethod resolves a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(s))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions:
		return m, nil
	}
	return "", fmt.Errorf("unsupported HTTP method: %s", s)
}

// ParseError reports a grammar violation in the token stream.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
