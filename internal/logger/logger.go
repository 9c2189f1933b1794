// Package logger provides the diagnostic logger used by the command-line tools. Output goes to stderr
// so that stdout only ever carries participant records.
package logger

// Log levels accepted by New.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)
