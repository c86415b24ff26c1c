// Package interfaces holds the methods a field or command type can
// implement to take over parsing, help or completion of its own values.
package interfaces

import (
	"github.com/rsteube/carapace"
)

// Unmarshaler parses a leaf from its command line argument.
type Unmarshaler interface {
	UnmarshalFlag(value string) error
}

// Marshaler formats a leaf default for the help message.
type Marshaler interface {
	MarshalFlag() (string, error)
}

// Describer is implemented by command types. The description
// is printed between the usage line and the arguments.
type Describer interface {
	Description() string
}

// Completer completes the values of a leaf type.
type Completer interface {
	Complete(ctx carapace.Context) carapace.Action
}
