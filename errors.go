package structcli

import (
	"github.com/reeflective/structcli/internal/errors"
)

var (
	// ErrNotStruct indicates a command type that is neither
	// a struct nor a pointer to one.
	ErrNotStruct = errors.ErrNotStruct

	// ErrUnsupportedType indicates a field whose type is neither a
	// value parsed from the command line nor a nested struct, or a
	// struct type containing itself.
	ErrUnsupportedType = errors.ErrUnsupportedType

	// ErrDuplicatePath indicates two flags with the same name, usually
	// fields promoted from several embedded structs.
	ErrDuplicatePath = errors.ErrDuplicatePath

	// ErrInvalidTag indicates a malformed struct tag, or a tag used
	// where it has no meaning.
	ErrInvalidTag = errors.ErrInvalidTag

	// ErrUnexportedField indicates an unexported field with flag tags.
	ErrUnexportedField = errors.ErrUnexportedField

	// ErrInvalidDefault indicates a default that cannot be
	// converted to the type of its field.
	ErrInvalidDefault = errors.ErrInvalidDefault

	// ErrDefaultType indicates an explicit default instance
	// of another type than the command.
	ErrDefaultType = errors.ErrDefaultType

	// ErrMissingRequired is the kind of usage errors for required flags
	// that were not given.
	ErrMissingRequired = errors.ErrMissingRequired

	// ErrCoercion is the kind of usage errors for values
	// that cannot be parsed into their field type.
	ErrCoercion = errors.ErrCoercion

	// ErrUnknownArgument is the kind of usage errors for tokens
	// matching no flag.
	ErrUnknownArgument = errors.ErrUnknownArgument

	// ErrHelp is wrapped by HelpError.
	ErrHelp = errors.ErrHelp

	// ErrInternal indicates a bug in this package.
	ErrInternal = errors.ErrInternal
)

// UsageError is an invalid command line. Use errors.Is with ErrMissingRequired,
// ErrCoercion or ErrUnknownArgument to find its kind.
type UsageError = errors.UsageError

// HelpError is returned by Parse when help was requested.
type HelpError struct {
	// Text is the help message.
	Text string
}

func (e *HelpError) Error() string { return errors.ErrHelp.Error() }

// Unwrap returns ErrHelp.
func (e *HelpError) Unwrap() error { return errors.ErrHelp }
