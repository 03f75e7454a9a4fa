package wikidump

import (
	"fmt"
)

// A ConfigError reports an invalid run configuration.  It is always
// returned before any input is read or output is created.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "wikidump: config: " + e.Msg
}

// A ParseError reports malformed XML in the input dump.
type ParseError struct {
	Line   int
	Column int
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wikidump: parse error at line %d, column %d (byte %d): %v",
		e.Line, e.Column, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// An IOError reports a failure reading or writing a dump file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "wikidump: " + e.Op + ": " + e.Err.Error()
	}
	return "wikidump: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }
