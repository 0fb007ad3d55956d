package scenario

import (
	"errors"
	"fmt"

	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
)

// MissingStateError means that a step read a session state key that no earlier step
// has set. This indicates a broken dependency declaration, so it aborts the scenario.
type MissingStateError struct {
	Key string
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("session state has no value for %q; no earlier step set it", e.Key)
}

// IsFatal returns true for errors that should abort the whole scenario rather than just
// fail one step.
func IsFatal(err error) bool {
	var me *MissingStateError
	return errors.As(err, &me) || harness.IsConfigurationError(err)
}

func configError(format string, args ...interface{}) error {
	return &harness.ConfigurationError{Message: fmt.Sprintf(format, args...)}
}
