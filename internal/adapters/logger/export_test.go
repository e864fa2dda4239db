// export_test.go exports private functions for white-box testing.
package logger

// ErrorEntry exposes errorEntry fields to external tests.
type ErrorEntry = errorEntry

// Message returns the entry's own message.
func (e errorEntry) Message() string { return e.message }

// Metadata returns the entry's metadata.
func (e errorEntry) Metadata() map[string]any { return e.metadata }

// ExportErrorFormatting exports the private error formatting functions for testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
