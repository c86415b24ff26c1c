// Package parser walks struct types and describes their fields: names,
// flag names, declared types, nesting and intrinsic defaults.
package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/values"
)

// PathSeparator joins the flag names of nested fields into a dotted path.
const PathSeparator = "."

// Field describes one field of a struct type.
type Field struct {
	Name     string       // Go field name
	FlagName string       // name segment on the command line
	Path     string       // dotted path of the field, including its ancestors
	Index    int          // index of the field in its struct
	Type     reflect.Type // declared type

	// Nested is true when the field is a struct (or pointer to one)
	// scanned as a group of fields rather than as a single value.
	Nested bool

	// Embedded nested fields don't prefix the paths of their children.
	Embedded bool

	HasDefault  bool   // a `default` tag is present
	Default     string // text of the `default` tag
	Placeholder string // value name in help, overriding the type tag
	Hidden      bool
	Negatable   *string // name of the negation flag, empty for --no-<name>

	Tag *Tag
}

// Walk returns the fields of the struct type typ in declaration order.
// Paths are prefixed with prefix, which is either empty or ends with the
// path separator. The type is walked afresh on each call.
func Walk(typ reflect.Type, prefix string) ([]Field, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", errors.ErrNotStruct, typ)
	}

	fields := make([]Field, 0, typ.NumField())
	names := make(map[string]string, typ.NumField())

	for i := range typ.NumField() {
		sfield := typ.Field(i)

		field, found, err := scanField(sfield, i, prefix)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typeName(typ), sfield.Name, err)
		}
		if !found {
			continue
		}

		if !field.Embedded {
			if other, exists := names[field.FlagName]; exists {
				return nil, fmt.Errorf("%w: %s and %s of %s both use %q",
					errors.ErrDuplicatePath, other, field.Name, typeName(typ), field.Path)
			}
			names[field.FlagName] = field.Name
		}

		fields = append(fields, field)
	}

	return fields, nil
}

func scanField(sfield reflect.StructField, index int, prefix string) (Field, bool, error) {
	tag, _, err := GetFieldTag(sfield)
	if err != nil {
		return Field{}, false, err
	}

	// Exported fields of unexported embedded structs are still settable,
	// as long as the embedded struct is not behind a pointer.
	embeddedValue := sfield.Anonymous && sfield.Type.Kind() == reflect.Struct && values.IsNested(sfield.Type)

	if !sfield.IsExported() && !embeddedValue {
		return Field{}, false, checkForDisallowedTags(sfield, tag)
	}
	if isIgnored(tag) {
		return Field{}, false, nil
	}

	field := Field{
		Name:        sfield.Name,
		Index:       index,
		Type:        sfield.Type,
		Tag:         tag,
		Placeholder: tagValue(tag, "placeholder"),
		Hidden:      isSet(tag, "hidden"),
		Negatable:   getFlagNegatable(sfield, tag),
	}

	field.Default, field.HasDefault = tag.Get("default")

	switch {
	case values.IsNested(sfield.Type):
		field.Nested = true
		field.Embedded = sfield.Anonymous && !hasExplicitName(tag)
	case values.IsLeaf(sfield.Type):
	default:
		return Field{}, false, fmt.Errorf("%w: %v", errors.ErrUnsupportedType, sfield.Type)
	}

	if field.Nested && field.HasDefault {
		return Field{}, false, fmt.Errorf("%w: default tag on a nested struct", errors.ErrInvalidTag)
	}

	field.FlagName = getFlagName(sfield, tag)
	field.Path = prefix + field.FlagName

	if strings.ContainsAny(field.FlagName, " =") || strings.HasPrefix(field.FlagName, "-") {
		return Field{}, false, fmt.Errorf("%w: invalid flag name %q", errors.ErrInvalidTag, field.FlagName)
	}

	return field, true, nil
}

var disallowedTags = []string{
	"flag", "long", "name", "help", "desc", "description",
	"default", "placeholder", "negatable",
}

func checkForDisallowedTags(field reflect.StructField, tag *Tag) error {
	var found []string

	for _, name := range disallowedTags {
		if _, ok := tag.Get(name); ok {
			found = append(found, name)
		}
	}

	if len(found) > 0 {
		return fmt.Errorf("%w: field '%s' is not exported but has tags: %s",
			errors.ErrUnexportedField, field.Name, strings.Join(found, ", "))
	}

	return nil
}

func hasExplicitName(tag *Tag) bool {
	for _, key := range []string{"flag", "long", "name"} {
		if _, ok := tag.Get(key); ok {
			return true
		}
	}

	return false
}

func tagValue(tag *Tag, key string) string {
	val, _ := tag.Get(key)

	return val
}

func typeName(typ reflect.Type) string {
	if typ.Name() != "" {
		return typ.Name()
	}

	return "struct"
}
