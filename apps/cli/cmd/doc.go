// Package cmd implements the reqx CLI commands using Cobra.
//
// Available commands:
//   - run: Execute requests from reqx files
//   - validate: Check file syntax without executing
//   - list: Display the requests defined in files
//   - history: Show recorded runs
//   - init: Create a new reqx project with example files
//   - version: Show reqx version information
//
// The run command supports request selection, dry runs, rate limiting,
// and watch mode for development workflows.
package cmd
