package parser

type TokenType int

const (
	TokenComment TokenType = iota
	TokenSeparator
	TokenVariable
	TokenMethod
	TokenURL
	TokenHeader
	TokenBodyLine
	TokenBlank
)

func (t TokenType) String() string {
	switch t {
	case TokenComment:
		return "comment"
	case TokenSeparator:
		return "separator"
	case TokenVariable:
		return "variable"
	case TokenMethod:
		return "method"
	case TokenURL:
		return "url"
	case TokenHeader:
		return "header"
	case TokenBodyLine:
		return "body line"
	case TokenBlank:
		return "blank line"
	default:
		return "unknown"
	}
}

// Token is a single classified source line (or, for a request line written as
// "METHOD url", one of the two tokens that line produces). Key is only set for
// variable definitions (the name) and headers (the header key); Value carries
// the text payload for every other kind.
type Token struct {
	Type  TokenType
	Key   string
	Value string
	Line  int
}
