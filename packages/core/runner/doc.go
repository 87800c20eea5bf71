// Package runner executes parsed request files.
//
// The Runner is the interpreter stage of the pipeline: it seeds the variable
// environment from the document, selects requests by index or method,
// resolves every {{name}} interpolation, and sends requests sequentially
// through an injected Transport. Extraction rules feed response values back
// into the environment for later requests, which is why execution is
// strictly in document order and fail-fast.
package runner
