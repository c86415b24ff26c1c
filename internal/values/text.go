package values

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/interfaces"
)

// textUnmarshalerValue is a Value adapter for any type
// that implements encoding.TextUnmarshaler.
type textUnmarshalerValue struct {
	value any // pointer to the leaf storage.
}

func newTextUnmarshaler(val any) Value {
	return &textUnmarshalerValue{value: val}
}

func (v *textUnmarshalerValue) Set(s string) error {
	unmarshaler, ok := v.value.(encoding.TextUnmarshaler)
	if !ok {
		return fmt.Errorf("%T does not implement encoding.TextUnmarshaler", v.value)
	}

	return unmarshaler.UnmarshalText([]byte(s))
}

func (v *textUnmarshalerValue) String() string {
	if marshaler, ok := v.value.(encoding.TextMarshaler); ok {
		bytes, err := marshaler.MarshalText()
		if err == nil {
			return string(bytes)
		}
	}
	if stringer, ok := v.value.(fmt.Stringer); ok {
		return stringer.String()
	}

	return ""
}

func (v *textUnmarshalerValue) Type() string {
	return typeName(v.value)
}

// flagUnmarshalerValue is a Value adapter for any type
// implementing the go-flags Unmarshaler/Marshaler interfaces.
type flagUnmarshalerValue struct {
	value any // pointer to the leaf storage.
}

func newFlagUnmarshalerValue(val any) Value {
	return &flagUnmarshalerValue{value: val}
}

func (v *flagUnmarshalerValue) Set(s string) error {
	unmarshaler, ok := v.value.(interfaces.Unmarshaler)
	if !ok {
		return fmt.Errorf("%T does not implement flags.Unmarshaler", v.value)
	}

	if err := unmarshaler.UnmarshalFlag(s); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (v *flagUnmarshalerValue) String() string {
	if marshaler, ok := v.value.(interfaces.Marshaler); ok {
		str, err := marshaler.MarshalFlag()
		if err == nil {
			return str
		}
	}
	if stringer, ok := v.value.(fmt.Stringer); ok {
		return stringer.String()
	}

	return ""
}

func (v *flagUnmarshalerValue) Type() string {
	return typeName(v.value)
}

// pointerValue allocates its target on the first Set,
// so that an untouched pointer leaf stays nil.
type pointerValue struct {
	value  reflect.Value
	target Value // parser of the allocated target, nil before the first Set
}

func (v *pointerValue) Set(s string) error {
	if v.target == nil {
		// Never write through a pointer shared with a default.
		ptr := reflect.New(v.value.Type().Elem())
		if !v.value.IsNil() {
			ptr.Elem().Set(v.value.Elem())
		}
		v.value.Set(ptr)
		v.target = NewValue(ptr.Elem())
	}

	return v.target.Set(s)
}

func (v *pointerValue) String() string {
	if v.value.IsNil() {
		return ""
	}
	if v.target != nil {
		return v.target.String()
	}

	return NewValue(v.value.Elem()).String()
}

func (v *pointerValue) Type() string {
	return NewValue(reflect.New(v.value.Type().Elem()).Elem()).Type()
}

func (v *pointerValue) IsBoolFlag() bool {
	return IsBool(NewValue(reflect.New(v.value.Type().Elem()).Elem()))
}

func typeName(ptr any) string {
	typ := reflect.TypeOf(ptr).Elem()
	if typ.Name() != "" {
		return strings.ToLower(typ.Name())
	}

	return kindName(typ)
}
