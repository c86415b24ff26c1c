// Package schema builds the argument schema of a command type: a tree whose
// internal nodes are structs and whose leaves are flag specifications,
// each identified by a unique dotted path.
package schema

import (
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/defaults"
	"github.com/reeflective/structcli/internal/parser"
	"github.com/reeflective/structcli/internal/values"
)

// Leaf is the specification of a single flag.
type Leaf struct {
	Path     string
	Type     reflect.Type
	Required bool
	Default  defaults.Resolved
	Help     string
	TypeTag  string // value name in help, like INT or PATH
	Field    parser.Field
}

// ShowsDefault reports whether the help message displays the leaf default.
func (l *Leaf) ShowsDefault() bool {
	return l.Default.Present() && !l.Default.Placeholder
}

// DefaultText returns the default value as given on the command line.
func (l *Leaf) DefaultText() string {
	if !l.Default.Present() || !l.Default.Value.IsValid() {
		return ""
	}

	_, value := l.NewValue()

	return value.String()
}

// NewValue allocates storage for the leaf, initialized with its default,
// and returns a pointer to it together with the value parsing into it.
func (l *Leaf) NewValue() (reflect.Value, values.Value) {
	ptr, value := values.New(l.Type)
	if l.Default.Present() && l.Default.Value.IsValid() {
		ptr.Elem().Set(copyValue(l.Default.Value))
	}

	return ptr, value
}

// Node is a struct or a leaf of the schema tree.
type Node struct {
	Type     reflect.Type  // declared type: the root struct, or the field type
	Field    *parser.Field // nil at the root
	Children []*Node       // fields of a struct node, in declaration order
	Leaf     *Leaf         // non-nil for leaf nodes
}

// IsLeaf reports whether the node is a leaf.
func (n *Node) IsLeaf() bool { return n.Leaf != nil }

// Tree is the complete schema of a command type.
type Tree struct {
	Type        reflect.Type // root struct type
	Description string
	Root        *Node
	Leaves      []*Leaf // depth first, in declaration order

	index map[string]*Leaf
}

// Lookup returns the leaf with the given dotted path.
func (t *Tree) Lookup(path string) (*Leaf, bool) {
	leaf, found := t.index[path]

	return leaf, found
}

// Required returns the leaves without any default.
func (t *Tree) Required() []*Leaf {
	var required []*Leaf

	for _, leaf := range t.Leaves {
		if leaf.Required {
			required = append(required, leaf)
		}
	}

	return required
}

// copyValue makes a shallow copy of collections so
// that parsing never writes into a caller's default.
func copyValue(val reflect.Value) reflect.Value {
	switch val.Kind() {
	case reflect.Slice:
		if val.IsNil() {
			return val
		}
		cp := reflect.MakeSlice(val.Type(), val.Len(), val.Len())
		reflect.Copy(cp, val)

		return cp
	case reflect.Map:
		if val.IsNil() {
			return val
		}
		cp := reflect.MakeMapWithSize(val.Type(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}

		return cp
	default:
		return val
	}
}

func typeTag(field parser.Field, value values.Value) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	if value == nil {
		return ""
	}

	return strings.ToUpper(value.Type())
}
