package values

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Convert coerces an explicit default value into a value of type typ.
// Values of a matching or numerically convertible type are used as is,
// decoded collections ([]any, map[string]any) are converted item by item,
// and anything else goes through the leaf parser with its string form.
func Convert(src any, typ reflect.Type) (reflect.Value, error) {
	dst := reflect.New(typ).Elem()
	if src == nil {
		return dst, nil
	}

	if err := assign(dst, reflect.ValueOf(src)); err != nil {
		return reflect.Value{}, err
	}

	return dst, nil
}

// Parse coerces a textual default, such as a `default` tag, into typ.
func Parse(text string, typ reflect.Type) (reflect.Value, error) {
	ptr, parser := New(typ)
	if parser == nil {
		return reflect.Value{}, fmt.Errorf("no parser for type %v", typ)
	}

	tokens := []string{text}
	if typ.Kind() == reflect.Slice && !textLike(typ) {
		tokens = splitList(text)
	}

	for _, token := range tokens {
		if err := parser.Set(token); err != nil {
			return reflect.Value{}, err
		}
	}

	return ptr.Elem(), nil
}

func assign(dst, src reflect.Value) error {
	for src.Kind() == reflect.Interface && !src.IsNil() {
		src = src.Elem()
	}

	switch {
	case src.Kind() == reflect.Interface || (src.Kind() == reflect.Ptr && src.IsNil()):
		return nil
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)

		return nil
	case dst.Kind() == reflect.Ptr:
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), src); err != nil {
			return err
		}
		dst.Set(elem)

		return nil
	case numeric(src.Kind()) && numeric(dst.Kind()) && src.Type().ConvertibleTo(dst.Type()):
		if err := checkNumeric(dst, src); err != nil {
			return err
		}
		dst.Set(src.Convert(dst.Type()))

		return nil
	case src.Kind() == reflect.String && dst.Kind() == reflect.String && !textLike(dst.Type()):
		dst.SetString(src.String())

		return nil
	case src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice && !textLike(dst.Type()):
		items := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			if err := assign(items.Index(i), src.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(items)

		return nil
	case src.Kind() == reflect.Map && dst.Kind() == reflect.Map:
		items := reflect.MakeMapWithSize(dst.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			key := reflect.New(dst.Type().Key()).Elem()
			val := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(key, iter.Key()); err != nil {
				return err
			}
			if err := assign(val, iter.Value()); err != nil {
				return err
			}
			items.SetMapIndex(key, val)
		}
		dst.Set(items)

		return nil
	}

	parser := NewValue(dst)
	if parser == nil {
		return fmt.Errorf("cannot convert %v to %v", src.Type(), dst.Type())
	}

	return parser.Set(fmt.Sprint(src.Interface()))
}

// checkNumeric returns an error if src does not fit exactly in dst.
func checkNumeric(dst, src reflect.Value) error {
	switch {
	case signed(src.Kind()):
		return checkInt(dst, src, src.Int())
	case unsigned(src.Kind()):
		n := src.Uint()
		if signed(dst.Kind()) && (n > math.MaxInt64 || dst.OverflowInt(int64(n))) {
			return fmt.Errorf("%v overflows %v", n, dst.Type())
		}
		if unsigned(dst.Kind()) && dst.OverflowUint(n) {
			return fmt.Errorf("%v overflows %v", n, dst.Type())
		}
	default:
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			if signed(dst.Kind()) || unsigned(dst.Kind()) {
				return fmt.Errorf("%v is not an integer", f)
			}

			return nil
		}
		if signed(dst.Kind()) || unsigned(dst.Kind()) {
			if f != math.Trunc(f) {
				return fmt.Errorf("%v is not an integer", f)
			}
			// 2^63 and above do not fit any signed integer.
			if f < math.MinInt64 || f >= math.MaxInt64 {
				if unsigned(dst.Kind()) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f)) {
					return nil
				}

				return fmt.Errorf("%v overflows %v", f, dst.Type())
			}

			return checkInt(dst, src, int64(f))
		}
		if dst.OverflowFloat(f) {
			return fmt.Errorf("%v overflows %v", f, dst.Type())
		}
	}

	return nil
}

func checkInt(dst, src reflect.Value, n int64) error {
	switch {
	case signed(dst.Kind()) && dst.OverflowInt(n):
		return fmt.Errorf("%v overflows %v", src.Interface(), dst.Type())
	case unsigned(dst.Kind()) && n < 0:
		return fmt.Errorf("negative value %v for %v", src.Interface(), dst.Type())
	case unsigned(dst.Kind()) && dst.OverflowUint(uint64(n)):
		return fmt.Errorf("%v overflows %v", src.Interface(), dst.Type())
	}

	return nil
}

func signed(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func unsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func numeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// textLike reports whether a slice or string type parses
// itself as a whole, like net.IP or types.Path.
func textLike(typ reflect.Type) bool {
	ptr := reflect.PointerTo(typ)

	return ptr.Implements(valueType) || ptr.Implements(textType) || ptr.Implements(flagUnmarshalType)
}

func splitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := strings.Split(text, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}

	return parts
}
