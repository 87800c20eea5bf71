// Package parser turns .reqx files into an executable document.
//
// Parsing happens in two stages. Tokenize classifies the input one line at a
// time into comments, separators, variable definitions, request lines,
// headers, body lines and blanks, using a small state machine that tracks
// whether it is inside a request body. ParseTokens then builds the ordered
// AST: document-level variables and request blocks with optional comment,
// method, URL, headers, body and extraction rules.
//
// The grammar is tolerant by design: unrecognized lines before a request line
// are treated as bare URLs, and unrecognized lines after one fall through to
// the body. Missing methods are inferred at parse time (POST when a body is
// present, GET otherwise).
package parser
