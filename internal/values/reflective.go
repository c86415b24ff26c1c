package values

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// reflectiveValue is a fallback parser that uses reflection to handle
// any type based on its Kind, including primitives, slices, and maps.
type reflectiveValue struct {
	value reflect.Value

	// changed is set on first Set, so that collections
	// given on the command line replace their default.
	changed bool
}

// newReflectiveValue creates a new reflective parser.
func newReflectiveValue(val reflect.Value) Value {
	return &reflectiveValue{value: val}
}

func (v *reflectiveValue) Set(s string) error {
	first := !v.changed
	v.changed = true

	switch v.value.Kind() {
	// Handle primitive types directly.
	case reflect.String:
		v.value.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// Handle time.Duration as a special case of int64
		if v.value.Type() == durationType {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			v.value.SetInt(int64(d))

			return nil
		}
		n, err := strconv.ParseInt(s, 0, v.value.Type().Bits())
		if err != nil {
			return err
		}
		v.value.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 0, v.value.Type().Bits())
		if err != nil {
			return err
		}
		v.value.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, v.value.Type().Bits())
		if err != nil {
			return err
		}
		v.value.SetFloat(n)

	// Handle slices by recursively parsing their elements.
	case reflect.Slice:
		if first {
			v.value.Set(reflect.MakeSlice(v.value.Type(), 0, 1))
		}

		elem := reflect.New(v.value.Type().Elem()).Elem()

		elemParser := NewValue(elem)
		if elemParser == nil {
			return fmt.Errorf("unsupported slice element type: %v", elem.Type())
		}
		if err := elemParser.Set(s); err != nil {
			return err
		}
		v.value.Set(reflect.Append(v.value, elem))

	// Handle maps by recursively parsing keys and values.
	case reflect.Map:
		if first || v.value.IsNil() {
			v.value.Set(reflect.MakeMap(v.value.Type()))
		}

		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("map value must be in 'key:value' format, got %q", s)
		}

		key := reflect.New(v.value.Type().Key()).Elem()
		val := reflect.New(v.value.Type().Elem()).Elem()

		keyParser := NewValue(key)
		valParser := NewValue(val)
		if keyParser == nil || valParser == nil {
			return fmt.Errorf("unsupported map key or value type: %v", v.value.Type())
		}
		if err := keyParser.Set(parts[0]); err != nil {
			return err
		}
		if err := valParser.Set(parts[1]); err != nil {
			return err
		}
		v.value.SetMapIndex(key, val)

	default:
		return fmt.Errorf("unsupported type for conversion: %v", v.value.Type())
	}

	return nil
}

func (v *reflectiveValue) String() string {
	switch v.value.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.value.Float(), 'g', -1, v.value.Type().Bits())
	case reflect.Slice:
		items := make([]string, 0, v.value.Len())
		for i := range v.value.Len() {
			items = append(items, elemString(v.value.Index(i)))
		}

		return "[" + strings.Join(items, " ") + "]"
	case reflect.Int64:
		if v.value.Type() == durationType {
			return time.Duration(v.value.Int()).String()
		}
	}

	return fmt.Sprintf("%v", v.value.Interface())
}

// IsBoolFlag makes boolean fields usable without an argument.
func (v *reflectiveValue) IsBoolFlag() bool {
	return v.value.Kind() == reflect.Bool
}

func (v *reflectiveValue) Type() string {
	return kindName(v.value.Type())
}

// kindName returns the short type name used in help
// messages, derived from the type's kind.
func kindName(typ reflect.Type) string {
	if typ == durationType {
		return "duration"
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice:
		if elem := NewValue(reflect.New(typ.Elem()).Elem()); elem != nil {
			return elem.Type() + "..."
		}
	case reflect.Map:
		return kindName(typ.Key()) + ":" + kindName(typ.Elem())
	}

	return typ.Kind().String()
}

func elemString(val reflect.Value) string {
	if !val.CanAddr() {
		cp := reflect.New(val.Type()).Elem()
		cp.Set(val)
		val = cp
	}

	if parser := NewValue(val); parser != nil {
		return parser.String()
	}

	return fmt.Sprintf("%v", val.Interface())
}
