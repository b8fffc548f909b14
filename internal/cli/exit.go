package cli

import "fmt"

// ExitError carries a specific process exit code through cobra's error
// path, so a failing project's own exit status can surface as the run's.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError builds an ExitError, normalizing non-positive codes to 1
func NewExitError(code int, format string, args ...any) *ExitError {
	if code <= 0 {
		code = 1
	}
	return &ExitError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
