package types

import "fmt"

// ConfigError reports a malformed or incomplete tool description. It is
// fatal: the program aborts at startup instead of showing a partial form.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Reason, e.Err)
	}
	return "invalid configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DecodeError reports process output that is not valid UTF-8 or JSON while
// a structured viewer is configured. There is no recovery path; the run
// yields no viewer.
type DecodeError struct {
	Format string // "utf-8" or "json"
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode output as %s: %v", e.Format, e.Err)
	}
	return "cannot decode output as " + e.Format
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// GroupColumnError reports grouping requested on a column index outside the
// imported table.
type GroupColumnError struct {
	Column int
	Width  int
}

func (e *GroupColumnError) Error() string {
	return fmt.Sprintf("group-by column %d out of range (table has %d columns)", e.Column, e.Width)
}
