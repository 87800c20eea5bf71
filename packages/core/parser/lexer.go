package parser

import (
	"fmt"
	"strings"
)

// LexError reports a malformed line that cannot be tokenized, such as a
// variable definition without an '=' or with an empty name.
type LexError struct {
	Line    int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// lexState tracks whether the lexer is inside a request body. Keeping this as
// an explicit enumeration (rather than a bare bool) makes the transitions in
// classifyLine auditable against the grammar.
type lexState int

const (
	stateDefault lexState = iota
	stateInBody
)

type lexer struct {
	tokens          []Token
	state           lexState
	seenRequestLine bool
}

// Tokenize converts raw file contents into an ordered token stream. Each
// physical line yields exactly one token, except "METHOD url" lines, which
// yield a Method token followed by a URL token.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{}

	lines := strings.Split(input, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && strings.HasSuffix(input, "\n") {
		lines = lines[:n-1]
	}

	for i, raw := range lines {
		raw = strings.TrimSuffix(raw, "\r")
		if err := l.classifyLine(raw, i+1); err != nil {
			return nil, err
		}
	}

	return l.tokens, nil
}

func (l *lexer) push(tok Token) {
	l.tokens = append(l.tokens, tok)
}

// lastMeaningful returns the most recent non-blank token, if any.
func (l *lexer) lastMeaningful() *Token {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if l.tokens[i].Type != TokenBlank {
			return &l.tokens[i]
		}
	}
	return nil
}

// classifyLine commits exactly one classification per raw line. The order of
// the checks below is part of the grammar: separator before comment (both
// start with '#'), variable before body passthrough (a variable line always
// ends an in-progress body), body passthrough before everything that follows.
func (l *lexer) classifyLine(raw string, line int) error {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "###" {
		l.state = stateDefault
		l.seenRequestLine = false
		l.push(Token{Type: TokenSeparator, Line: line})
		return nil
	}

	if trimmed == "" {
		if l.state != stateInBody {
			// A blank line after the headers (or a bare URL) marks the start
			// of the body region.
			if last := l.lastMeaningful(); last != nil && (last.Type == TokenHeader || last.Type == TokenURL) {
				l.state = stateInBody
			}
		}
		l.push(Token{Type: TokenBlank, Line: line})
		return nil
	}

	if strings.HasPrefix(trimmed, "@") {
		eq := strings.Index(trimmed, "=")
		if eq < 0 {
			return &LexError{Line: line, Message: "invalid variable definition (missing '='): " + trimmed}
		}
		name := strings.TrimSpace(trimmed[1:eq])
		if name == "" {
			return &LexError{Line: line, Message: "empty variable name"}
		}
		value := strings.TrimSpace(trimmed[eq+1:])
		// A variable line always ends an in-progress body.
		l.state = stateDefault
		l.push(Token{Type: TokenVariable, Key: name, Value: value, Line: line})
		return nil
	}

	if l.state == stateInBody {
		l.push(Token{Type: TokenBodyLine, Value: raw, Line: line})
		return nil
	}

	if strings.HasPrefix(trimmed, "#") {
		l.push(Token{Type: TokenComment, Value: strings.TrimSpace(trimmed[1:]), Line: line})
		return nil
	}

	if !l.seenRequestLine && l.tryRequestLine(trimmed, line) {
		return nil
	}

	if colon := strings.Index(trimmed, ":"); colon >= 0 {
		key := strings.TrimSpace(trimmed[:colon])
		if key != "" && !strings.Contains(key, " ") {
			value := strings.TrimSpace(trimmed[colon+1:])
			l.push(Token{Type: TokenHeader, Key: key, Value: value, Line: line})
			return nil
		}
	}

	if !l.seenRequestLine {
		l.push(Token{Type: TokenURL, Value: trimmed, Line: line})
		l.seenRequestLine = true
		return nil
	}

	l.push(Token{Type: TokenBodyLine, Value: raw, Line: line})
	return nil
}

// tryRequestLine recognizes "METHOD url" lines and bare URLs whose prefix
// unambiguously identifies them without a method.
func (l *lexer) tryRequestLine(trimmed string, line int) bool {
	first := trimmed
	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		first = trimmed[:i]
	}

	if upper := strings.ToUpper(first); isHTTPMethod(upper) {
		l.push(Token{Type: TokenMethod, Value: upper, Line: line})
		if rest := strings.TrimSpace(trimmed[len(first):]); rest != "" {
			l.push(Token{Type: TokenURL, Value: rest, Line: line})
		}
		l.seenRequestLine = true
		return true
	}

	if strings.HasPrefix(trimmed, "http://") ||
		strings.HasPrefix(trimmed, "https://") ||
		strings.HasPrefix(trimmed, "localhost") ||
		strings.HasPrefix(trimmed, ":") {
		l.push(Token{Type: TokenURL, Value: trimmed, Line: line})
		l.seenRequestLine = true
		return true
	}

	return false
}

func isHTTPMethod(s string) bool {
	switch s {
	case "GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS":
		return true
	}
	return false
}
