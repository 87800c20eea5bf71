package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/reqx/packages/capture"
	"github.com/abdul-hamid-achik/reqx/packages/core/env"
	"github.com/abdul-hamid-achik/reqx/packages/core/parser"
	"github.com/abdul-hamid-achik/reqx/packages/http"
)

// ErrInvalidRequestIndex is returned when -r selects a request the file does
// not have. Indices are 1-based.
var ErrInvalidRequestIndex = errors.New("invalid request index")

type Config struct {
	DryRun       bool
	RequestIndex *int   // 1-based; nil runs every request
	MethodFilter string // e.g. "GET"; empty runs every method
	EnvFile      string // optional dotenv file layered under document variables
	Rate         float64
}

// Runner is the interpreter: it resolves variables, sequences requests
// through the transport, and feeds extraction results back into the
// environment. Execution is sequential and fail-fast.
type Runner struct {
	transport http.Transport
	config    *Config
	observer  Observer
}

func NewRunner(transport http.Transport, cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runner{
		transport: transport,
		config:    cfg,
		observer:  nopObserver{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

type Option func(*Runner)

// WithObserver attaches an Observer that receives execution events as they
// happen.
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.observer = obs
		}
	}
}

// Report is the outcome of a full run.
type Report struct {
	File     string
	Total    int // requests in the file, before selection
	Results  []*RequestResult
	Duration time.Duration
}

// RequestResult records one executed (or dry-run) request.
type RequestResult struct {
	Index    int // 1-based position in the file
	Comment  string
	Request  *http.Request
	Response *http.Response // nil when dry-run
	DryRun   bool
}

// RunFile parses the file at path and runs it.
func (r *Runner) RunFile(ctx context.Context, path string) (*Report, error) {
	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, file)
}

// Run executes the file's requests in document order. The first failure of
// any kind aborts the run: later requests may depend on extracted values
// that a failed request never produced.
func (r *Runner) Run(ctx context.Context, file *parser.File) (*Report, error) {
	environment := env.New()
	if r.config.EnvFile != "" {
		if err := environment.LoadDotEnv(r.config.EnvFile); err != nil {
			return nil, err
		}
	}

	// Document variables go on top: a @name in the file wins over the
	// same key in the env file.
	for _, v := range file.Variables {
		environment.Set(v.Name, v.Value)
	}

	r.observer.Variables(environment)

	selected, err := r.selectRequests(file)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if r.config.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.config.Rate), 1)
	}

	start := time.Now()
	report := &Report{
		File:  file.Path,
		Total: len(file.Requests),
	}

	for _, sel := range selected {
		result, err := r.runRequest(ctx, sel.index, report.Total, sel.request, environment, limiter)
		if err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		report.Results = append(report.Results, result)
	}

	report.Duration = time.Since(start)
	return report, nil
}

type selection struct {
	index   int // 1-based
	request *parser.Request
}

// selectRequests applies -r and -m. Index selection happens first, then the
// method filter; an empty result after filtering is not an error, only a
// notice.
func (r *Runner) selectRequests(file *parser.File) ([]selection, error) {
	total := len(file.Requests)

	var selected []selection
	if r.config.RequestIndex != nil {
		idx := *r.config.RequestIndex
		if idx < 1 || idx > total {
			return nil, fmt.Errorf("%w: %d. The file has %d request(s)", ErrInvalidRequestIndex, idx, total)
		}
		selected = []selection{{index: idx, request: file.Requests[idx-1]}}
	} else {
		for i, req := range file.Requests {
			selected = append(selected, selection{index: i + 1, request: req})
		}
	}

	if r.config.MethodFilter != "" {
		method, err := parser.ParseMethod(r.config.MethodFilter)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP method filter: %s", r.config.MethodFilter)
		}

		filtered := selected[:0]
		for _, sel := range selected {
			if sel.request.Method == method {
				filtered = append(filtered, sel)
			}
		}
		selected = filtered

		if len(selected) == 0 {
			r.observer.Notice(fmt.Sprintf("No requests matched the method filter: %s", r.config.MethodFilter))
		}
	}

	return selected, nil
}

func (r *Runner) runRequest(ctx context.Context, index, total int, req *parser.Request, environment *env.Env, limiter *rate.Limiter) (*RequestResult, error) {
	resolved, err := resolveRequest(req, environment)
	if err != nil {
		return nil, err
	}

	r.observer.RequestStart(index, total, req.Comment, resolved)

	if r.config.DryRun {
		r.observer.DryRun(index)
		return &RequestResult{
			Index:   index,
			Comment: req.Comment,
			Request: resolved,
			DryRun:  true,
		}, nil
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := r.transport.Do(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("request %d failed: %w", index, err)
	}

	r.observer.Response(index, resp)

	if len(req.Extracts) > 0 {
		values, err := capture.ExtractAll(resp, req.Extracts)
		if err != nil {
			return nil, err
		}
		environment.SetAll(values)
	}

	return &RequestResult{
		Index:    index,
		Comment:  req.Comment,
		Request:  resolved,
		Response: resp,
	}, nil
}

// resolveRequest interpolates the URL, header keys and values, and body, and
// expands the leading-colon localhost shorthand.
func resolveRequest(req *parser.Request, environment *env.Env) (*http.Request, error) {
	url, err := environment.Interpolate(req.URL)
	if err != nil {
		return nil, err
	}

	resolved := http.NewRequest(string(req.Method), ExpandURL(url))

	for _, h := range req.Headers {
		key, err := environment.Interpolate(h.Key)
		if err != nil {
			return nil, err
		}
		value, err := environment.Interpolate(h.Value)
		if err != nil {
			return nil, err
		}
		resolved.AddHeader(key, value)
	}

	if req.Body != nil {
		body, err := environment.Interpolate(req.Body.Raw)
		if err != nil {
			return nil, err
		}
		resolved.SetBody(body)
	}

	return resolved, nil
}

// ExpandURL turns the ":port/path" shorthand into a localhost URL. Any other
// URL passes through untouched, after interpolation has already happened.
func ExpandURL(url string) string {
	if len(url) > 0 && url[0] == ':' {
		return "http://localhost" + url
	}
	return url
}
