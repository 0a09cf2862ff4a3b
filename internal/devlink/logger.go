package devlink

import (
	"fmt"
	"io"
)

// Logger carries the output sinks for progress lines and errors.
type Logger struct {
	Out func(string)
	Err func(error)
}

// NewLogger writes progress lines to out and errors to errw. Error lines
// are prefixed with "error: " and passed through style when it is non-nil.
func NewLogger(out, errw io.Writer, style func(string) string) Logger {
	return Logger{
		Out: func(s string) { _, _ = fmt.Fprintln(out, s) },
		Err: func(err error) {
			line := "error: " + err.Error()
			if style != nil {
				line = style(line)
			}
			_, _ = fmt.Fprintln(errw, line)
		},
	}
}

func (l Logger) out(format string, args ...any) {
	if l.Out != nil {
		l.Out(fmt.Sprintf(format, args...))
	}
}

func (l Logger) err(err error) {
	if l.Err != nil {
		l.Err(err)
	}
}
