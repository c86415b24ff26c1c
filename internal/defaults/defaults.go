// Package defaults resolves the default value of each field from, in order of
// precedence, an explicit default instance, the field's `default` tag, or
// nothing at all, in which case the field is required.
package defaults

import (
	"fmt"
	"reflect"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/parser"
	"github.com/reeflective/structcli/internal/values"
)

// Source is where a resolved default comes from.
type Source int

const (
	// None means no default: the field is required.
	None Source = iota
	// Explicit defaults come from a default instance given by the caller.
	Explicit
	// Intrinsic defaults come from the field declaration itself.
	Intrinsic
)

func (s Source) String() string {
	switch s {
	case Explicit:
		return "explicit"
	case Intrinsic:
		return "intrinsic"
	default:
		return "none"
	}
}

// Resolved is the default of one field.
type Resolved struct {
	Source Source
	Value  reflect.Value // of the field type, invalid when Source is None

	// Placeholder defaults are bound, so that their field is not required,
	// but they carry no meaningful value and are not displayed in help.
	Placeholder bool
}

// Present reports whether a default was resolved. A field is required
// if and only if its default is not present.
func (r Resolved) Present() bool { return r.Source != None }

// Resolve returns the default of a leaf field, as bound in the explicit
// instance (which may be nil), or as declared by the field.
func Resolve(field parser.Field, explicit Instance) (Resolved, error) {
	if explicit != nil {
		if binding, bound := explicit.Lookup(field); bound {
			return resolveExplicit(field, binding)
		}
	}

	if field.HasDefault {
		value, err := values.Parse(field.Default, field.Type)
		if err != nil {
			return Resolved{}, fmt.Errorf("%w: %s: %q: %w", errors.ErrInvalidDefault, field.Path, field.Default, err)
		}

		return Resolved{Source: Intrinsic, Value: value}, nil
	}

	// Pointer fields may stay nil.
	if field.Type.Kind() == reflect.Ptr {
		return Resolved{Source: Intrinsic, Value: reflect.New(field.Type).Elem(), Placeholder: true}, nil
	}

	return Resolved{Source: None}, nil
}

func resolveExplicit(field parser.Field, binding Binding) (Resolved, error) {
	if !binding.Value.IsValid() || binding.Placeholder {
		return Resolved{Source: Explicit, Value: reflect.New(field.Type).Elem(), Placeholder: true}, nil
	}

	value, err := values.Convert(binding.Value.Interface(), field.Type)
	if err != nil {
		return Resolved{}, fmt.Errorf("%w: %s: %w", errors.ErrInvalidDefault, field.Path, err)
	}

	return Resolved{Source: Explicit, Value: value}, nil
}
