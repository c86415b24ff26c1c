package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reeflective/structcli/internal/defaults"
	"github.com/reeflective/structcli/internal/docs"
	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/parser"
	"github.com/reeflective/structcli/internal/values"
)

// Build walks the struct type typ (or pointer to struct) recursively and
// returns its schema. The explicit default instance may be nil, and so
// may the documentation resolver. No partial tree is returned on error.
func Build(typ reflect.Type, explicit defaults.Instance, resolver docs.Resolver) (*Tree, error) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", errors.ErrNotStruct, typ)
	}
	if resolver == nil {
		resolver = docs.Tags()
	}

	builder := &builder{
		resolver: resolver,
		index:    make(map[string]*Leaf),
		visiting: make(map[reflect.Type]bool),
	}

	root := &Node{Type: typ}
	keyed, err := builder.build(root, typ, "", explicit)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(explicit, keyed, ""); err != nil {
		return nil, err
	}

	return &Tree{
		Type:        typ,
		Description: resolver.Resolve(typ).Summary,
		Root:        root,
		Leaves:      builder.leaves,
		index:       builder.index,
	}, nil
}

type builder struct {
	resolver docs.Resolver
	leaves   []*Leaf
	index    map[string]*Leaf
	visiting map[reflect.Type]bool // struct types on the current branch
}

// build fills node with the fields of typ. It returns the fields keyed
// by explicit instances at this level, embedded structs flattened.
func (b *builder) build(node *Node, typ reflect.Type, prefix string, explicit defaults.Instance) ([]parser.Field, error) {
	if b.visiting[typ] {
		return nil, fmt.Errorf("%w: %v contains itself", errors.ErrUnsupportedType, typ)
	}
	b.visiting[typ] = true
	defer delete(b.visiting, typ)

	fields, err := parser.Walk(typ, prefix)
	if err != nil {
		return nil, err
	}

	entry := b.resolver.Resolve(typ)
	keyed := make([]parser.Field, 0, len(fields))

	for i := range fields {
		field := fields[i]
		child := &Node{Type: field.Type, Field: &field}

		if field.Nested {
			inner, err := b.nested(child, field, prefix, explicit)
			if err != nil {
				return nil, err
			}
			if field.Embedded {
				keyed = append(keyed, inner...)
			} else {
				keyed = append(keyed, field)
			}
		} else {
			leaf, err := b.leaf(field, entry, explicit)
			if err != nil {
				return nil, err
			}
			child.Leaf = leaf
			keyed = append(keyed, field)
		}

		node.Children = append(node.Children, child)
	}

	return keyed, nil
}

func (b *builder) nested(node *Node, field parser.Field, prefix string, explicit defaults.Instance) ([]parser.Field, error) {
	childType := field.Type
	if childType.Kind() == reflect.Ptr {
		childType = childType.Elem()
	}

	childPrefix := prefix
	if !field.Embedded {
		childPrefix = field.Path + parser.PathSeparator
	}

	var childExplicit defaults.Instance
	if explicit != nil {
		childExplicit = explicit.Child(field)
	}

	keyed, err := b.build(node, childType, childPrefix, childExplicit)
	if err != nil || field.Embedded {
		return keyed, err
	}

	return nil, checkKeys(childExplicit, keyed, childPrefix)
}

// checkKeys rejects explicit default keys naming no field.
func checkKeys(explicit defaults.Instance, fields []parser.Field, prefix string) error {
	unknown := defaults.Unknown(explicit, fields)
	if len(unknown) == 0 {
		return nil
	}

	for i, key := range unknown {
		unknown[i] = prefix + key
	}

	return fmt.Errorf("%w: unknown keys: %s", errors.ErrInvalidDefault, strings.Join(unknown, ", "))
}

func (b *builder) leaf(field parser.Field, entry docs.Entry, explicit defaults.Instance) (*Leaf, error) {
	if other, exists := b.index[field.Path]; exists {
		return nil, fmt.Errorf("%w: %q is used by both %s and %s",
			errors.ErrDuplicatePath, field.Path, other.Field.Name, field.Name)
	}

	resolved, err := defaults.Resolve(field, explicit)
	if err != nil {
		return nil, err
	}

	_, value := values.New(field.Type)
	if value == nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrUnsupportedType, field.Path, field.Type)
	}

	leaf := &Leaf{
		Path:     field.Path,
		Type:     field.Type,
		Required: !resolved.Present(),
		Default:  resolved,
		Help:     entry.Field(field.Name),
		TypeTag:  typeTag(field, value),
		Field:    field,
	}

	b.leaves = append(b.leaves, leaf)
	b.index[leaf.Path] = leaf

	return leaf, nil
}
