package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/abdul-hamid-achik/reqx/packages/core/env"
	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
	"github.com/abdul-hamid-achik/reqx/packages/http"
)

func newTestConsole(verbose bool) (*Console, *bytes.Buffer) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	return NewConsole(WithWriter(buf), WithVerbose(verbose)), buf
}

func TestConsole_RequestBanner(t *testing.T) {
	console, buf := newTestConsole(false)

	req := http.NewRequest("GET", "http://localhost:3000/users")
	console.RequestStart(2, 5, "List users", req)

	out := buf.String()
	assert.Contains(t, out, "━━━ Request 2/5 ━━━")
	assert.Contains(t, out, "▸ List users")
	assert.Contains(t, out, "GET http://localhost:3000/users")
}

func TestConsole_VerboseShowsHeadersAndBody(t *testing.T) {
	console, buf := newTestConsole(true)

	req := http.NewRequest("POST", "http://api.test/login").
		AddHeader("Content-Type", "application/json").
		SetBody(`{"user":"test"}`)
	console.RequestStart(1, 1, "", req)

	out := buf.String()
	assert.Contains(t, out, "Content-Type: application/json")
	assert.Contains(t, out, "Body:")
	assert.Contains(t, out, `"user": "test"`)
}

func TestConsole_NonVerboseHidesHeaders(t *testing.T) {
	console, buf := newTestConsole(false)

	req := http.NewRequest("GET", "http://api.test/users").
		AddHeader("Accept", "application/json")
	console.RequestStart(1, 1, "", req)

	assert.NotContains(t, buf.String(), "Accept:")
}

func TestConsole_Response(t *testing.T) {
	console, buf := newTestConsole(false)

	console.Response(1, &http.Response{
		StatusCode: 200,
		Body:       []byte(`{"ok":true}`),
	})

	out := buf.String()
	assert.Contains(t, out, "Status: 200")
	assert.Contains(t, out, "Response Body:")
	assert.Contains(t, out, `"ok": true`)
}

func TestConsole_ResponseTruncatesLongPlainBody(t *testing.T) {
	console, buf := newTestConsole(false)

	body := strings.Repeat("line\n", 60)
	console.Response(1, &http.Response{StatusCode: 200, Body: []byte(strings.TrimRight(body, "\n"))})

	assert.Contains(t, buf.String(), "... (10 more lines)")
}

func TestConsole_DryRun(t *testing.T) {
	console, buf := newTestConsole(false)

	console.DryRun(1)
	assert.Contains(t, buf.String(), "(dry-run: request not sent)")
}

func TestConsole_VariablesOnlyWhenVerbose(t *testing.T) {
	environment := env.New()
	environment.Set("host", "localhost:3000")

	console, buf := newTestConsole(false)
	console.Variables(environment)
	assert.Empty(t, buf.String())

	console, buf = newTestConsole(true)
	console.Variables(environment)
	out := buf.String()
	assert.Contains(t, out, "── Variables ──")
	assert.Contains(t, out, "host = localhost:3000")
}

func TestConsole_Summary(t *testing.T) {
	console, buf := newTestConsole(false)

	report := &runner.Report{
		Duration: 120 * time.Millisecond,
		Results: []*runner.RequestResult{
			{Index: 1, Response: &http.Response{StatusCode: 200, Duration: 40 * time.Millisecond}},
			{Index: 2, Response: &http.Response{StatusCode: 201, Duration: 60 * time.Millisecond}},
		},
	}
	console.Summary(report)

	out := buf.String()
	assert.Contains(t, out, "── Summary ──")
	assert.Contains(t, out, "Sent: 2 request(s)")
	assert.Contains(t, out, "p95=")
}

func TestConsole_SummarySkipsDryRuns(t *testing.T) {
	console, buf := newTestConsole(false)

	report := &runner.Report{
		Results: []*runner.RequestResult{{Index: 1, DryRun: true}},
	}
	console.Summary(report)
	assert.Empty(t, buf.String())
}
