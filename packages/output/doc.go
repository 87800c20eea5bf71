// Package output renders run results for the terminal.
//
// The Console streams execution events as they happen: a banner per request,
// the colored method and resolved URL, response status and body with JSON
// pretty-printing, and an optional latency summary at the end of the run.
package output
