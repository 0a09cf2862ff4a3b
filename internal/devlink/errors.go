package devlink

import "fmt"

// ConfigurationError reports a specifier that cannot be resolved to a
// repository: an unrecognized URL, an unknown package, or a local directory
// without a readable package name.
type ConfigurationError struct {
	Spec   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("cannot install %q: %s", e.Spec, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
