package parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/errors"
)

// Tag is a map of struct tags, where each key may carry several values.
type Tag map[string][]string

// GetFieldTag returns the struct tags for a given field, and whether it is empty.
func GetFieldTag(field reflect.StructField) (*Tag, bool, error) {
	tag := Tag{}
	if err := tag.parse(string(field.Tag)); err != nil {
		return nil, true, fmt.Errorf("field %s: %w", field.Name, err)
	}

	return &tag, len(tag) == 0, nil
}

// Get returns the value of a tag.
func (t *Tag) Get(key string) (string, bool) {
	if val, ok := (*t)[key]; ok {
		return val[0], true
	}

	return "", false
}

// GetMany returns the values of a tag.
func (t *Tag) GetMany(key string) []string {
	if val, ok := (*t)[key]; ok {
		return val
	}

	return nil
}

func (t *Tag) parse(tag string) error {
	for tag != "" {
		// Skip leading space.
		pos := 0
		for pos < len(tag) && tag[pos] == ' ' {
			pos++
		}
		tag = tag[pos:]
		if tag == "" {
			break
		}

		// Scan to colon. A space, a quote or a control character is a syntax error.
		pos = 0
		for pos < len(tag) && tag[pos] > ' ' && tag[pos] != ':' && tag[pos] != '"' && tag[pos] != 0x7f {
			pos++
		}
		if pos == 0 || pos+1 >= len(tag) || tag[pos] != ':' || tag[pos+1] != '"' {
			return fmt.Errorf("%w: invalid syntax", errors.ErrInvalidTag)
		}
		name := tag[:pos]
		tag = tag[pos+1:]

		// Scan quoted string to find value.
		pos = 1
		for pos < len(tag) && tag[pos] != '"' {
			if tag[pos] == '\\' {
				pos++
			}
			pos++
		}
		if pos >= len(tag) {
			return fmt.Errorf("%w: invalid syntax", errors.ErrInvalidTag)
		}
		qvalue := tag[:pos+1]
		tag = tag[pos+1:]

		value, ok := reflect.StructTag(name + ":" + qvalue).Lookup(name)
		if !ok {
			return fmt.Errorf("%w: tag value not found", errors.ErrInvalidTag)
		}
		(*t)[name] = append((*t)[name], value)
	}

	return nil
}

//
// Functions for parsing tag information --------------------------------------//
//

// isIgnored checks if a field is explicitly excluded from the command line.
func isIgnored(tag *Tag) bool {
	if val, isSet := tag.Get("flag"); isSet && val == "-" {
		return true
	}
	_, noFlag := tag.Get("no-flag")

	return noFlag
}

// getFlagName returns the flag name of a field, from its `flag`,
// `long` or `name` tags, or derived from the Go field name.
func getFlagName(field reflect.StructField, tag *Tag) string {
	var long string

	if names, isSet := tag.Get("flag"); isSet {
		long = strings.TrimSpace(strings.Split(names, ",")[0])
	}
	if name, isSet := tag.Get("name"); isSet {
		long = name
	}
	if l, ok := tag.Get("long"); ok {
		long = l
	}

	if long == "" {
		long = CamelToFlag(field.Name, flagDivider)
	}

	return long
}

// GetUsage returns the help text carried by the field tags, if any.
func GetUsage(tag *Tag) string {
	if usage, isSet := tag.Get("description"); isSet {
		return usage
	}
	if usage, isSet := tag.Get("desc"); isSet {
		return usage
	}
	if usage, isSet := tag.Get("help"); isSet {
		return usage
	}

	return ""
}

func getFlagNegatable(field reflect.StructField, tag *Tag) *string {
	typ := field.Type
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Bool {
		return nil
	}

	negatable, ok := tag.Get("negatable")
	if !ok {
		return nil
	}

	return &negatable
}

func isSet(tag *Tag, key string) bool {
	if _, ok := tag.Get(key); ok {
		return true
	}

	// sflags-style attributes within the `flag` tag, e.g. `flag:"name,hidden"`.
	if flagTag, ok := tag.Get("flag"); ok {
		for _, attr := range strings.Split(flagTag, ",")[1:] {
			if strings.TrimSpace(attr) == key {
				return true
			}
		}
	}

	return false
}
