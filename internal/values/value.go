// Package values implements the coercion of command-line tokens into the
// native Go type of each leaf field.
package values

import (
	"encoding"
	"reflect"
	"time"

	"github.com/spf13/pflag"

	"github.com/reeflective/structcli/internal/interfaces"
)

// Value is the interface to the dynamic value stored in a flag.
// It is the pflag.Value interface, so that user types implementing
// it are used as is.
type Value = pflag.Value

// BoolFlag is an optional interface to indicate boolean flags
// that don't accept a value, and implicitly have "true" as their value.
type BoolFlag interface {
	IsBoolFlag() bool
}

var (
	valueType         = reflect.TypeOf((*Value)(nil)).Elem()
	textType          = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	flagUnmarshalType = reflect.TypeOf((*interfaces.Unmarshaler)(nil)).Elem()
	durationType      = reflect.TypeOf(time.Duration(0))
)

// NewValue creates a new value for a leaf, storing into val, which must be
// addressable. It uses a tiered strategy to find the best way to handle the
// type, and returns nil if the type cannot be handled.
func NewValue(val reflect.Value) Value {
	if !val.CanAddr() {
		return nil
	}

	ptr := val.Addr().Interface()

	// 1. Direct `pflag.Value` implementation.
	if v, ok := ptr.(Value); ok {
		return v
	}

	// 2. go-flags style and encoding.TextUnmarshaler interfaces.
	if _, ok := ptr.(interfaces.Unmarshaler); ok {
		return newFlagUnmarshalerValue(ptr)
	}
	if _, ok := ptr.(encoding.TextUnmarshaler); ok {
		return newTextUnmarshaler(ptr)
	}

	// 3. Pointers are allocated only when set, so that nil stays a valid default.
	if val.Kind() == reflect.Ptr {
		if !IsLeaf(val.Type().Elem()) {
			return nil
		}

		return &pointerValue{value: val}
	}

	// 4. Reflective parser fallback.
	if !reflectiveKind(val.Type()) {
		return nil
	}

	return newReflectiveValue(val)
}

// New allocates storage for a leaf of type typ and returns a pointer
// to it together with the value parsing into it.
func New(typ reflect.Type) (reflect.Value, Value) {
	ptr := reflect.New(typ)

	return ptr, NewValue(ptr.Elem())
}

// IsLeaf reports whether a field of type typ is handled as a single value,
// as opposed to a nested group of fields.
func IsLeaf(typ reflect.Type) bool {
	ptr := reflect.PointerTo(typ)
	if ptr.Implements(valueType) || ptr.Implements(textType) || ptr.Implements(flagUnmarshalType) {
		return true
	}

	if typ.Kind() == reflect.Ptr {
		return typ.Elem().Kind() != reflect.Ptr && IsLeaf(typ.Elem())
	}

	return reflectiveKind(typ)
}

// IsNested reports whether typ is a struct, or a pointer to one,
// that is scanned as a group of fields rather than a single value.
func IsNested(typ reflect.Type) bool {
	if IsLeaf(typ) {
		return false
	}
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct
}

// IsBool reports whether a value accepts no argument on the command line.
func IsBool(val Value) bool {
	boolFlag, ok := val.(BoolFlag)

	return ok && boolFlag.IsBoolFlag()
}

func reflectiveKind(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		elem := typ.Elem()

		return elem.Kind() != reflect.Slice && elem.Kind() != reflect.Map && IsLeaf(elem)
	case reflect.Map:
		return anyOf(mapAllowedKinds, typ.Key().Kind()) && reflectiveKind(typ.Elem()) &&
			typ.Elem().Kind() != reflect.Slice && typ.Elem().Kind() != reflect.Map
	default:
		return false
	}
}

var mapAllowedKinds = []reflect.Kind{
	reflect.String,
	reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
	reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
}

func anyOf(kinds []reflect.Kind, kind reflect.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}

	return false
}
