package errors

import "fmt"

// Wrap adds context to an error. It returns nil if err is nil so it can be
// used inline:
//
//	return errors.Wrap(err, "failed to load activity")
//
// The original chain is preserved for errors.Is() checks.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Persistence marks err as a storage failure while keeping the driver error
// reachable through errors.Is/As.
func Persistence(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, msg, err)
}
