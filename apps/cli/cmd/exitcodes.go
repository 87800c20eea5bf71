package cmd

// Exit codes for the reqx CLI
const (
	// ExitSuccess indicates every selected request completed
	ExitSuccess = 0

	// ExitRunError indicates a request or extraction failed
	ExitRunError = 1

	// ExitParseError indicates a file parsing error
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
