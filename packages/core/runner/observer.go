package runner

import (
	"github.com/abdul-hamid-achik/reqx/packages/core/env"
	"github.com/abdul-hamid-achik/reqx/packages/http"
)

// Observer receives execution events as the run progresses, so callers can
// stream output while the runner stays free of presentation concerns.
type Observer interface {
	// Variables is called once with the fully seeded environment.
	Variables(environment *env.Env)

	// RequestStart is called with the resolved request before it is sent.
	// index and total refer to positions in the file, not the selection.
	RequestStart(index, total int, comment string, req *http.Request)

	// DryRun is called instead of Response when the request is not sent.
	DryRun(index int)

	// Response is called after a request completes.
	Response(index int, resp *http.Response)

	// Notice reports informational conditions, such as an empty selection.
	Notice(message string)
}

type nopObserver struct{}

func (nopObserver) Variables(*env.Env)                            {}
func (nopObserver) RequestStart(int, int, string, *http.Request)  {}
func (nopObserver) DryRun(int)                                    {}
func (nopObserver) Response(int, *http.Response)                  {}
func (nopObserver) Notice(string)                                 {}
