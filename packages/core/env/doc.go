// Package env holds the variable environment for request interpolation.
//
// An Env maps flat variable names to string values. The interpreter seeds it
// from a document's @name = value declarations in order, so a later
// declaration of the same name wins, and extraction rules may add to it
// between requests. Interpolation of {{name}} spans is strict: unknown names
// and unclosed spans are errors rather than silent passthrough.
package env
