package parser

import (
	"os"
	"strings"
)

type parser struct {
	tokens []Token
	pos    int
	file   string
}

// ParseFile reads and parses a .reqx file from disk.
func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), path)
}

// Parse tokenizes and parses raw file contents.
func Parse(input, filename string) (*File, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, filename)
}

// ParseTokens builds the document AST from an already-tokenized stream.
func ParseTokens(tokens []Token, filename string) (*File, error) {
	p := &parser{tokens: tokens, file: filename}
	return p.parseFile()
}

func (p *parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// peekAfterBlanks returns the first non-blank token at or after offset tokens
// past the current position.
func (p *parser) peekAfterBlanks(offset int) *Token {
	for i := p.pos + offset; i < len(p.tokens); i++ {
		if p.tokens[i].Type != TokenBlank {
			return &p.tokens[i]
		}
	}
	return nil
}

func (p *parser) next() *Token {
	tok := p.peek()
	if tok != nil {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(line int, msg string) *ParseError {
	return &ParseError{File: p.file, Line: line, Message: msg}
}

func (p *parser) parseFile() (*File, error) {
	file := &File{Path: p.file}

	p.parseLeading(file)

	for {
		for tok := p.peek(); tok != nil && (tok.Type == TokenBlank || tok.Type == TokenSeparator); tok = p.peek() {
			p.next()
		}
		if p.peek() == nil {
			break
		}

		req, err := p.parseRequest(file)
		if err != nil {
			return nil, err
		}
		file.Requests = append(file.Requests, req)
	}

	return file, nil
}

// parseLeading consumes the region before the first request block: variable
// definitions and discardable comments. A comment whose next non-blank token
// is a Method belongs to the upcoming request and is left alone.
func (p *parser) parseLeading(file *File) {
	for {
		tok := p.peek()
		if tok == nil {
			return
		}
		switch tok.Type {
		case TokenVariable:
			p.next()
			file.Variables = append(file.Variables, &Variable{Name: tok.Key, Value: tok.Value, Line: tok.Line})
		case TokenBlank:
			p.next()
		case TokenComment:
			if next := p.peekAfterBlanks(1); next != nil && next.Type == TokenMethod {
				return
			}
			p.next()
		case TokenSeparator:
			p.next()
			return
		default:
			return
		}
	}
}

func (p *parser) parseRequest(file *File) (*Request, error) {
	req := &Request{}

	// Block preamble: comments (the last one wins) and document-level
	// variables defined between blocks.
	for {
		tok := p.peek()
		if tok == nil {
			break
		}
		if tok.Type == TokenComment {
			p.next()
			req.Comment = tok.Value
			continue
		}
		if tok.Type == TokenVariable {
			p.next()
			file.Variables = append(file.Variables, &Variable{Name: tok.Key, Value: tok.Value, Line: tok.Line})
			continue
		}
		if tok.Type == TokenBlank {
			p.next()
			continue
		}
		break
	}

	if err := p.parseRequestLine(req); err != nil {
		return nil, err
	}
	p.parseHeaders(req)
	p.parseBody(req)
	p.parseExtracts(req)

	if req.Method == "" {
		if req.Body != nil {
			req.Method = MethodPost
		} else {
			req.Method = MethodGet
		}
	}

	return req, nil
}

func (p *parser) parseRequestLine(req *Request) error {
	tok := p.next()
	if tok == nil {
		line := 0
		if len(p.tokens) > 0 {
			line = p.tokens[len(p.tokens)-1].Line
		}
		return p.errorf(line, "unexpected end of input: expected HTTP method or URL")
	}
	req.Line = tok.Line

	switch tok.Type {
	case TokenMethod:
		method, err := ParseMethod(tok.Value)
		if err != nil {
			return p.errorf(tok.Line, err.Error())
		}
		req.Method = method

		urlTok := p.next()
		if urlTok == nil {
			return p.errorf(tok.Line, "expected URL after method")
		}
		if urlTok.Type != TokenURL {
			return p.errorf(urlTok.Line, "expected URL, found "+urlTok.Type.String())
		}
		req.URL = urlTok.Value
		return nil
	case TokenURL:
		req.URL = tok.Value
		return nil
	default:
		return p.errorf(tok.Line, "expected HTTP method or URL, found "+tok.Type.String())
	}
}

// parseHeaders consumes a run of header lines. A blank line is consumed and
// ends the run; boundary tokens end it without being consumed.
func (p *parser) parseHeaders(req *Request) {
	for {
		tok := p.peek()
		if tok == nil {
			return
		}
		switch tok.Type {
		case TokenHeader:
			p.next()
			req.Headers = append(req.Headers, &Header{Key: tok.Key, Value: tok.Value, Line: tok.Line})
		case TokenBlank:
			p.next()
			return
		default:
			return
		}
	}
}

// parseBody collects body lines joined with newlines. A blank line followed
// by another body line is kept as an empty line inside the body; any other
// blank (or a boundary token) ends the body. No lines collected means the
// body is absent, not empty.
func (p *parser) parseBody(req *Request) {
	var lines []string
	for {
		tok := p.peek()
		if tok == nil {
			break
		}
		if tok.Type == TokenBodyLine {
			p.next()
			lines = append(lines, tok.Value)
			continue
		}
		if tok.Type == TokenBlank {
			if p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Type == TokenBodyLine {
				p.next()
				lines = append(lines, "")
				continue
			}
			break
		}
		break
	}

	if len(lines) == 0 {
		return
	}
	req.Body = &Body{Raw: strings.Join(lines, "\n"), Line: req.Line}
}

// parseExtracts consumes `@name = path` rules declared after the request's
// body (or headers, when there is no body).
func (p *parser) parseExtracts(req *Request) {
	for {
		tok := p.peek()
		if tok == nil {
			return
		}
		if tok.Type == TokenVariable {
			p.next()
			req.Extracts = append(req.Extracts, &Extract{Name: tok.Key, Path: tok.Value, Line: tok.Line})
			continue
		}
		if tok.Type == TokenBlank {
			if next := p.peekAfterBlanks(1); next != nil && next.Type == TokenVariable {
				p.next()
				continue
			}
			return
		}
		return
	}
}

