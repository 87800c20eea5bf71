package capture

import (
	"testing"

	"github.com/abdul-hamid-achik/reqx/packages/core/parser"
	"github.com/abdul-hamid-achik/reqx/packages/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Headers:    []http.Header{{Key: "Content-Type", Value: "application/json"}},
		Body:       []byte(body),
	}
}

func TestExtract_TopLevelField(t *testing.T) {
	resp := jsonResponse(`{"token": "abc123", "user": {"id": 42}}`)

	value, err := NewExtractor(resp).Extract(&parser.Extract{Name: "token", Path: "token"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestExtract_NestedPath(t *testing.T) {
	resp := jsonResponse(`{"user": {"id": 42, "name": "ada"}}`)

	value, err := NewExtractor(resp).Extract(&parser.Extract{Name: "uid", Path: "user.id"})
	require.NoError(t, err)
	assert.Equal(t, "42", value)
}

func TestExtract_ArrayIndex(t *testing.T) {
	resp := jsonResponse(`{"items": [{"id": 1}, {"id": 2}]}`)

	value, err := NewExtractor(resp).Extract(&parser.Extract{Name: "first", Path: "items.0.id"})
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}

func TestExtract_EmptyPathBindsRawBody(t *testing.T) {
	resp := &http.Response{StatusCode: 200, Body: []byte("plain text body")}

	value, err := NewExtractor(resp).Extract(&parser.Extract{Name: "raw", Path: ""})
	require.NoError(t, err)
	assert.Equal(t, "plain text body", value)
}

func TestExtract_MissingPath(t *testing.T) {
	resp := jsonResponse(`{"token": "abc123"}`)

	_, err := NewExtractor(resp).Extract(&parser.Extract{Name: "uid", Path: "user.id"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.id")
}

func TestExtractAll(t *testing.T) {
	resp := jsonResponse(`{"token": "abc123", "user": {"id": 42}}`)

	results, err := ExtractAll(resp, []*parser.Extract{
		{Name: "token", Path: "token"},
		{Name: "uid", Path: "user.id"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "abc123", "uid": "42"}, results)
}

func TestExtractAll_FailsOnFirstMissing(t *testing.T) {
	resp := jsonResponse(`{"token": "abc123"}`)

	_, err := ExtractAll(resp, []*parser.Extract{
		{Name: "token", Path: "token"},
		{Name: "uid", Path: "user.id"},
	})
	require.Error(t, err)
}
