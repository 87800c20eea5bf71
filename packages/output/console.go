package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/pretty"

	"github.com/abdul-hamid-achik/reqx/packages/core/env"
	"github.com/abdul-hamid-achik/reqx/packages/core/runner"
	"github.com/abdul-hamid-achik/reqx/packages/http"
)

// maxBodyLines caps non-JSON response body output.
const maxBodyLines = 50

// Console renders execution events to a terminal. It implements
// runner.Observer so output streams while the run progresses.
type Console struct {
	writer  io.Writer
	verbose bool
}

type ConsoleOption func(*Console)

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(c *Console) {
		c.verbose = v
	}
}

// WithNoColor disables ANSI colors globally.
func WithNoColor(nc bool) ConsoleOption {
	return func(c *Console) {
		if nc {
			color.NoColor = true
		}
	}
}

var _ runner.Observer = (*Console)(nil)

func (c *Console) Variables(environment *env.Env) {
	if !c.verbose || environment.Len() == 0 {
		return
	}

	dim := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(c.writer, dim("── Variables ──"))
	for _, name := range environment.Names() {
		value, _ := environment.Lookup(name)
		fmt.Fprintf(c.writer, "  %s = %s\n", cyan(name), value)
	}
	fmt.Fprintln(c.writer)
}

func (c *Console) RequestStart(index, total int, comment string, req *http.Request) {
	banner := color.New(color.Bold, color.FgBlue).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	underline := color.New(color.Underline).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(c.writer, banner(fmt.Sprintf("━━━ Request %d/%d ━━━", index, total)))

	if comment != "" {
		fmt.Fprintf(c.writer, "%s %s\n", green("▸"), bold(comment))
	}

	fmt.Fprintf(c.writer, "%s %s\n", methodColor(req.Method), underline(req.URL))

	if c.verbose {
		for _, h := range req.Headers {
			fmt.Fprintf(c.writer, "  %s: %s\n", dim(h.Key), h.Value)
		}
		if req.HasBody {
			fmt.Fprintf(c.writer, "  %s\n", dim("Body:"))
			c.printIndented(req.Body, 0)
		}
	}
}

func (c *Console) DryRun(index int) {
	dim := color.New(color.Faint, color.Italic).SprintFunc()
	fmt.Fprintf(c.writer, "%s\n\n", dim("  (dry-run: request not sent)"))
}

func (c *Console) Response(index int, resp *http.Response) {
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(c.writer, "  %s %s\n", dim("Status:"), statusColor(resp.StatusCode))

	if c.verbose {
		fmt.Fprintf(c.writer, "  %s\n", dim("Response Headers:"))
		for _, h := range resp.Headers {
			fmt.Fprintf(c.writer, "    %s: %s\n", dim(h.Key), h.Value)
		}
	}

	if len(resp.Body) > 0 {
		fmt.Fprintf(c.writer, "  %s\n", dim("Response Body:"))
		c.printIndented(resp.BodyString(), maxBodyLines)
	}

	fmt.Fprintln(c.writer)
}

func (c *Console) Notice(message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(c.writer, dim(message))
}

// printIndented writes body indented four spaces, pretty-printing valid JSON
// and truncating anything else at maxLines (0 means no limit).
func (c *Console) printIndented(body string, maxLines int) {
	dim := color.New(color.Faint).SprintFunc()

	if json.Valid([]byte(body)) {
		formatted := pretty.PrettyOptions([]byte(body), &pretty.Options{Indent: "  "})
		for _, line := range strings.Split(strings.TrimRight(string(formatted), "\n"), "\n") {
			fmt.Fprintf(c.writer, "    %s\n", line)
		}
		return
	}

	lines := strings.Split(body, "\n")
	limit := len(lines)
	if maxLines > 0 && limit > maxLines {
		limit = maxLines
	}
	for _, line := range lines[:limit] {
		fmt.Fprintf(c.writer, "    %s\n", line)
	}
	if limit < len(lines) {
		fmt.Fprintf(c.writer, "    %s\n", dim(fmt.Sprintf("... (%d more lines)", len(lines)-limit)))
	}
}

func methodColor(method string) string {
	var attr color.Attribute
	switch method {
	case "GET":
		attr = color.FgGreen
	case "POST":
		attr = color.FgYellow
	case "PUT":
		attr = color.FgBlue
	case "PATCH":
		attr = color.FgMagenta
	case "DELETE":
		attr = color.FgRed
	case "HEAD":
		attr = color.FgCyan
	default:
		attr = color.FgWhite
	}
	return color.New(attr, color.Bold).Sprint(method)
}

func statusColor(code int) string {
	var attr color.Attribute
	switch {
	case code >= 200 && code < 300:
		attr = color.FgGreen
	case code >= 400 && code < 500:
		attr = color.FgYellow
	case code >= 500:
		attr = color.FgRed
	default:
		attr = color.FgWhite
	}
	return color.New(attr, color.Bold).Sprint(code)
}
