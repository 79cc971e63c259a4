package core

import "fmt"

// Logger interface for simulator logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger implements Logger by writing to stdout
type StdoutLogger struct{}

func (sl *StdoutLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewStdoutLogger creates a new stdout logger
func NewStdoutLogger() Logger {
	return &StdoutLogger{}
}
