package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Variable(t *testing.T) {
	tokens, err := Tokenize("@base_url = https://api.example.com")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenVariable, tokens[0].Type)
	assert.Equal(t, "base_url", tokens[0].Key)
	assert.Equal(t, "https://api.example.com", tokens[0].Value)
	assert.Equal(t, 1, tokens[0].Line)
}

func TestTokenize_VariableErrors(t *testing.T) {
	t.Run("missing equals", func(t *testing.T) {
		_, err := Tokenize("@base_url https://api.example.com")
		require.Error(t, err)
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr)
		assert.Equal(t, 1, lexErr.Line)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := Tokenize("@ = value")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty variable name")
	})
}

func TestTokenize_Separator(t *testing.T) {
	tokens, err := Tokenize("###")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenSeparator, tokens[0].Type)
}

func TestTokenize_Comment(t *testing.T) {
	tokens, err := Tokenize("# This is a comment")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenComment, tokens[0].Type)
	assert.Equal(t, "This is a comment", tokens[0].Value)
}

func TestTokenize_MethodAndURL(t *testing.T) {
	tokens, err := Tokenize("GET https://api.example.com/users")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenMethod, tokens[0].Type)
	assert.Equal(t, "GET", tokens[0].Value)
	assert.Equal(t, TokenURL, tokens[1].Type)
	assert.Equal(t, "https://api.example.com/users", tokens[1].Value)
}

func TestTokenize_MethodCaseInsensitive(t *testing.T) {
	tokens, err := Tokenize("post https://api.example.com/users")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenMethod, tokens[0].Type)
	assert.Equal(t, "POST", tokens[0].Value)
}

func TestTokenize_URLOnly(t *testing.T) {
	tokens, err := Tokenize(":3000/api/status")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenURL, tokens[0].Type)
	assert.Equal(t, ":3000/api/status", tokens[0].Value)
}

func TestTokenize_Header(t *testing.T) {
	tokens, err := Tokenize("Content-Type: application/json")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenHeader, tokens[0].Type)
	assert.Equal(t, "Content-Type", tokens[0].Key)
	assert.Equal(t, "application/json", tokens[0].Value)
}

func TestTokenize_HeaderOnlyAfterRequestLine(t *testing.T) {
	// A line with a colon but a spaced key is not a header; before any
	// request line it falls back to a bare URL.
	tokens, err := Tokenize("not a header: value")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenURL, tokens[0].Type)
}

func TestTokenize_BlankAfterHeadersStartsBody(t *testing.T) {
	input := "GET https://api.example.com\nAccept: application/json\n\n{\"a\": 1}"
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	require.Len(t, tokens, 5)
	assert.Equal(t, TokenBlank, tokens[3].Type)
	assert.Equal(t, TokenBodyLine, tokens[4].Type)
	assert.Equal(t, "{\"a\": 1}", tokens[4].Value)
}

func TestTokenize_BodyLinesAreVerbatim(t *testing.T) {
	input := ":3000/data\n\n  indented line  "
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenBodyLine, last.Type)
	assert.Equal(t, "  indented line  ", last.Value)
}

func TestTokenize_VariableEndsBody(t *testing.T) {
	input := "POST :3000/login\n\n{\"user\": \"x\"}\n@token = token"
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenVariable, last.Type)
	assert.Equal(t, "token", last.Key)
	assert.Equal(t, "token", last.Value)
}

func TestTokenize_SeparatorResetsState(t *testing.T) {
	input := "GET :3000/a\n\nbody line\n###\nGET :3000/b"
	tokens, err := Tokenize(input)
	require.NoError(t, err)

	var methods int
	for _, tok := range tokens {
		if tok.Type == TokenMethod {
			methods++
		}
	}
	assert.Equal(t, 2, methods, "method recognition should resume after the separator")
}

func TestTokenize_SecondMethodWordFallsThrough(t *testing.T) {
	// Once a block has a request line, a later "GET ..." line is body or
	// header material, never a second request line.
	input := "GET :3000/a\n\nGET is also a body word"
	tokens, err := Tokenize(input)
	require.NoError(t, err)
	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenBodyLine, last.Type)
}

func TestTokenize_FullRequest(t *testing.T) {
	input := `@token = abc123

###

# Get users
GET https://api.example.com/users
Authorization: Bearer {{token}}
Accept: application/json

{
  "key": "value"
}`

	tokens, err := Tokenize(input)
	require.NoError(t, err)

	seen := map[TokenType]bool{}
	for _, tok := range tokens {
		seen[tok.Type] = true
	}
	for _, want := range []TokenType{TokenVariable, TokenSeparator, TokenComment, TokenMethod, TokenURL, TokenHeader, TokenBodyLine, TokenBlank} {
		assert.True(t, seen[want], "expected a %s token", want)
	}
}

func TestTokenize_LineNumbersAreOneBased(t *testing.T) {
	tokens, err := Tokenize("# first\n\nGET :3000/x")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
	assert.Equal(t, 3, tokens[3].Line)
}

func TestTokenize_CRLF(t *testing.T) {
	tokens, err := Tokenize("GET :3000/x\r\nAccept: text/plain\r\n")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "Accept", tokens[2].Key)
	assert.Equal(t, "text/plain", tokens[2].Value)
}
