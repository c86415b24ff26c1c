package errors

// UsageError is a user error on the command line: a missing required flag,
// a value that cannot be coerced, or unrecognized tokens. Its message is
// what gets printed after "prog: error: ".
type UsageError struct {
	// The kind of error, one of ErrMissingRequired,
	// ErrCoercion or ErrUnknownArgument.
	Kind error

	// The error message
	Message string
}

// Error returns the error's message.
func (e *UsageError) Error() string {
	return e.Message
}

// Unwrap returns the kind of the error.
func (e *UsageError) Unwrap() error {
	return e.Kind
}

// NewUsageError returns a usage error of the given kind.
func NewUsageError(kind error, message string) *UsageError {
	return &UsageError{Kind: kind, Message: message}
}
