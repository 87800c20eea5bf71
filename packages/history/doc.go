// Package history stores past runs in a local SQLite database.
//
// Recording is opt-in via the --history flag or config. Each run gets a
// UUID, a summary row, and one row per executed request, so reqx history can
// list what ran, when, and how it responded.
package history
