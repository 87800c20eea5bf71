package env

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUndefinedVariable is returned when an interpolation references a
	// name that is not in the environment.
	ErrUndefinedVariable = errors.New("undefined variable")

	// ErrUnclosedInterpolation is returned when a "{{" span is never closed.
	ErrUnclosedInterpolation = errors.New("unclosed variable interpolation")
)

// Env is the variable environment used during request interpolation. It is an
// explicit value with a single writer: the interpreter seeds it from the
// document's variables (last write wins) and may update it after response
// extraction. It is never ambient state.
type Env struct {
	vars map[string]string
}

func New() *Env {
	return &Env{vars: make(map[string]string)}
}

// Set inserts or overwrites a variable.
func (e *Env) Set(name, value string) {
	e.vars[name] = value
}

// SetAll inserts every entry of vars, overwriting existing names.
func (e *Env) SetAll(vars map[string]string) {
	for k, v := range vars {
		e.vars[k] = v
	}
}

func (e *Env) Lookup(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Len() int {
	return len(e.vars)
}

// Names returns all defined names in sorted order, for display.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Interpolate replaces every {{name}} span in s with the variable's value.
// Substitution is flat: values are inserted verbatim, never re-scanned, and
// there is no escape for a literal "{{". A reference to an unknown name or a
// span that is never closed is an error.
func (e *Env) Interpolate(s string) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] == '{' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.Index(s[i+2:], "}}")
			if end < 0 {
				return "", fmt.Errorf("%w: {{%s", ErrUnclosedInterpolation, s[i+2:])
			}
			name := strings.TrimSpace(s[i+2 : i+2+end])
			val, ok := e.vars[name]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
			}
			out.WriteString(val)
			i += 2 + end + 2
			continue
		}
		out.WriteByte(s[i])
		i++
	}

	return out.String(), nil
}
