// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("oidcrypt account migrate work")   // Commands and code
//	ui.Path.Sprint("~/.config/oidcrypt/config.toml")  // File paths
//	ui.SuccessMark()                                   // ✓
//	ui.FailMark()                                      // ✗
//	ui.Warning.Sprint("[legacy]")                      // Warnings
//	ui.HintMark()                                      // → before a hint
//	ui.Highlight.Sprint("work")                        // Account names, key IDs
//	ui.Muted.Sprint("optional")                        // De-emphasized text
//	ui.Field("backend", 8, "file")                     // Aligned label/value rows
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
