// Package docs resolves the help text of command types: a summary for the
// type itself and one documentation string per field.
//
// Documentation is display-only: it never changes the type, the default or
// the required-ness of a field.
package docs

import (
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/interfaces"
	"github.com/reeflective/structcli/internal/parser"
)

// Entry is the documentation of a struct type.
type Entry struct {
	Summary string
	Fields  map[string]string // keyed by Go field name
}

// Field returns the documentation of a field, or an empty string.
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// Resolver returns the documentation of struct types.
type Resolver interface {
	Resolve(typ reflect.Type) Entry
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(typ reflect.Type) Entry

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(typ reflect.Type) Entry { return f(typ) }

// Chain merges the entries of several resolvers: for the summary and for
// each field, the first resolver giving a non-empty text wins.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(typ reflect.Type) Entry {
		merged := Entry{Fields: make(map[string]string)}

		for _, resolver := range resolvers {
			if resolver == nil {
				continue
			}

			entry := resolver.Resolve(typ)
			if merged.Summary == "" {
				merged.Summary = entry.Summary
			}
			for name, doc := range entry.Fields {
				if _, exists := merged.Fields[name]; !exists && doc != "" {
					merged.Fields[name] = doc
				}
			}
		}

		return merged
	})
}

// Tags resolves field documentation from `help`, `desc`
// and `description` struct tags.
func Tags() Resolver {
	return ResolverFunc(func(typ reflect.Type) Entry {
		entry := Entry{Fields: make(map[string]string)}
		typ = indirect(typ)

		for i := range typ.NumField() {
			field := typ.Field(i)

			tag, _, err := parser.GetFieldTag(field)
			if err != nil {
				continue
			}
			if usage := parser.GetUsage(tag); usage != "" {
				entry.Fields[field.Name] = usage
			}
		}

		return entry
	})
}

// Describers resolves the summary of types implementing
// the Describer interface on their value or pointer.
func Describers() Resolver {
	return ResolverFunc(func(typ reflect.Type) Entry {
		describer, ok := reflect.New(indirect(typ)).Interface().(interfaces.Describer)
		if !ok {
			return Entry{}
		}

		return Entry{Summary: strings.TrimSpace(describer.Description())}
	})
}

// Static returns an entry given by the caller for the type typ only.
func Static(typ reflect.Type, entry Entry) Resolver {
	typ = indirect(typ)

	return ResolverFunc(func(other reflect.Type) Entry {
		if indirect(other) != typ {
			return Entry{}
		}

		return entry
	})
}

func indirect(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return typ
}
