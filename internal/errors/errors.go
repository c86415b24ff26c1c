package errors

import "errors"

var (
	// ErrParse is a general error used to wrap more specific schema errors.
	ErrParse = errors.New("parse error")

	// ErrNotStruct indicates that the root type given to the schema
	// builder is neither a struct nor a pointer to one.
	ErrNotStruct = errors.New("root type must be a struct or a pointer to struct")

	// ErrUnsupportedType indicates a field whose type resolves neither to
	// a leaf value nor to a nested struct.
	ErrUnsupportedType = errors.New("unsupported field type")

	// ErrDuplicatePath indicates two leaves flattened to the same dotted path.
	ErrDuplicatePath = errors.New("duplicate field path")

	// ErrInvalidTag indicates an invalid tag or invalid use of an existing tag.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnexportedField is returned when an unexported field carries tags.
	ErrUnexportedField = errors.New("unexported field")

	// ErrInvalidDefault indicates a default that cannot be coerced into
	// the type of its field.
	ErrInvalidDefault = errors.New("invalid default value")

	// ErrDefaultType indicates a default instance of the wrong type.
	ErrDefaultType = errors.New("default instance does not match the command type")

	// ErrMissingRequired indicates that required flags were not given.
	ErrMissingRequired = errors.New("the following arguments are required")

	// ErrCoercion indicates a token that cannot be converted to its flag type.
	ErrCoercion = errors.New("invalid argument")

	// ErrUnknownArgument indicates tokens that match no flag.
	ErrUnknownArgument = errors.New("unrecognized arguments")

	// ErrHelp is returned when the help flag was given.
	ErrHelp = errors.New("help requested")

	// ErrInternal indicates an inconsistency between the schema and the
	// parsed values. It is always a bug, never a user error.
	ErrInternal = errors.New("internal inconsistency")
)
