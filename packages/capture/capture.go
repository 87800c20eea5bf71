package capture

import (
	"fmt"

	"github.com/abdul-hamid-achik/reqx/packages/core/parser"
	"github.com/abdul-hamid-achik/reqx/packages/http"
	"github.com/tidwall/gjson"
)

// Extractor pulls values out of a single response for @name = path
// extraction rules.
type Extractor struct {
	response *http.Response
	bodyJSON gjson.Result
}

func NewExtractor(resp *http.Response) *Extractor {
	return &Extractor{
		response: resp,
		bodyJSON: gjson.ParseBytes(resp.Body),
	}
}

// Extract evaluates a single rule against the response body. The rule's path
// is a dotted JSON path; an empty path binds the raw body text. Extracted
// values are coerced to strings so they can re-enter the variable
// environment.
func (e *Extractor) Extract(rule *parser.Extract) (string, error) {
	if rule.Path == "" {
		return e.response.BodyString(), nil
	}

	result := e.bodyJSON.Get(rule.Path)
	if !result.Exists() {
		return "", fmt.Errorf("extraction %q: path %q not found in response body", rule.Name, rule.Path)
	}

	return result.String(), nil
}

// ExtractAll evaluates every rule in order, failing on the first rule whose
// path does not resolve.
func ExtractAll(resp *http.Response, rules []*parser.Extract) (map[string]string, error) {
	extractor := NewExtractor(resp)
	results := make(map[string]string, len(rules))

	for _, rule := range rules {
		value, err := extractor.Extract(rule)
		if err != nil {
			return nil, err
		}
		results[rule.Name] = value
	}

	return results, nil
}
