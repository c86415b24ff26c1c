package defaults

import (
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/parser"
)

// Binding is the value bound to a field by an explicit instance.
type Binding struct {
	Value       reflect.Value
	Placeholder bool
}

// Instance is an explicit default instance, complete or partial.
type Instance interface {
	// Lookup returns the value bound to a leaf field, if any.
	Lookup(field parser.Field) (Binding, bool)

	// Child returns the sub-instance of a nested field.
	// It returns nil if the instance has none.
	Child(field parser.Field) Instance
}

// FromValue returns a view over an explicit default instance of type typ.
// The instance may be nil, a typ value or pointer, or a map[string]any
// whose keys are flag names or Go field names, and where nested maps
// hold the defaults of nested structs.
func FromValue(instance any, typ reflect.Type) (Instance, error) {
	if instance == nil {
		return nil, nil
	}

	if m, ok := asMap(reflect.ValueOf(instance)); ok {
		return m, nil
	}

	val := reflect.ValueOf(instance)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}

	if val.Type() != typ {
		return nil, fmt.Errorf("%w: got %v, want %v", errors.ErrDefaultType, val.Type(), typ)
	}

	return structInstance{value: val}, nil
}

// structInstance is a complete instance, binding every field.
// Zero values are placeholders.
type structInstance struct {
	value reflect.Value
}

func (s structInstance) Lookup(field parser.Field) (Binding, bool) {
	value := s.value.Field(field.Index)

	return Binding{Value: value, Placeholder: value.IsZero()}, true
}

func (s structInstance) Child(field parser.Field) Instance {
	value := s.value.Field(field.Index)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}

	return structInstance{value: value}
}

// mapInstance is a partial instance decoded from a map.
// Nil values are placeholders.
type mapInstance map[string]any

func (m mapInstance) Lookup(field parser.Field) (Binding, bool) {
	value, bound := m.get(field)
	if !bound {
		return Binding{}, false
	}
	if value == nil {
		return Binding{Placeholder: true}, true
	}

	return Binding{Value: reflect.ValueOf(value)}, true
}

func (m mapInstance) Child(field parser.Field) Instance {
	// Embedded fields are flattened into their parent.
	if field.Embedded {
		return m
	}

	value, bound := m.get(field)
	if !bound || value == nil {
		return nil
	}

	if child, ok := asMap(reflect.ValueOf(value)); ok {
		return child
	}

	// A struct value given for a nested field.
	val := reflect.ValueOf(value)
	for val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	if val.Kind() == reflect.Struct {
		return structInstance{value: val}
	}

	return nil
}

func (m mapInstance) get(field parser.Field) (any, bool) {
	if value, ok := m[field.FlagName]; ok {
		return value, true
	}
	value, ok := m[field.Name]

	return value, ok
}

// Unknown returns the sorted keys of the partial instances in instance
// that bind none of the given fields. Embedded struct fields are keyed
// by their children, so only their descendants should be given.
func Unknown(instance Instance, fields []parser.Field) []string {
	known := make(map[string]bool, 2*len(fields))
	for _, field := range fields {
		known[field.FlagName] = true
		known[field.Name] = true
	}

	unknown := make(map[string]bool)
	collectUnknown(instance, known, unknown)

	keys := maps.Keys(unknown)
	slices.Sort(keys)

	return keys
}

func collectUnknown(instance Instance, known, unknown map[string]bool) {
	switch inst := instance.(type) {
	case mapInstance:
		for key := range inst {
			if !known[key] {
				unknown[key] = true
			}
		}
	case overlay:
		collectUnknown(inst.top, known, unknown)
		collectUnknown(inst.bottom, known, unknown)
	}
}

// asMap converts decoded maps (map[string]any, or the
// map[any]any of some YAML decoders) into a map instance.
func asMap(val reflect.Value) (mapInstance, bool) {
	if val.Kind() != reflect.Map || val.Type().Key().Kind() == reflect.Struct {
		return nil, false
	}
	if val.Type().Elem().Kind() != reflect.Interface {
		return nil, false
	}

	m := make(mapInstance, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}

	return m, true
}

// Overlay returns an instance binding fields from top first, then
// from bottom. Either may be nil.
func Overlay(top, bottom Instance) Instance {
	switch {
	case top == nil:
		return bottom
	case bottom == nil:
		return top
	}

	return overlay{top: top, bottom: bottom}
}

type overlay struct {
	top, bottom Instance
}

func (o overlay) Lookup(field parser.Field) (Binding, bool) {
	if binding, bound := o.top.Lookup(field); bound {
		return binding, true
	}

	return o.bottom.Lookup(field)
}

func (o overlay) Child(field parser.Field) Instance {
	return Overlay(o.top.Child(field), o.bottom.Child(field))
}
