// Package reconstruct builds a value of a command type back from the
// flat mapping of dotted paths to parsed leaf values.
package reconstruct

import (
	"fmt"
	"reflect"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/gen"
	"github.com/reeflective/structcli/internal/schema"
)

// Build returns a new value of the tree root type, with every leaf set from
// parsed. Children are built before their parents, and pointers to nested
// structs are allocated. A leaf missing from parsed is an internal error.
func Build(tree *schema.Tree, parsed gen.Parsed) (reflect.Value, error) {
	root := reflect.New(tree.Type).Elem()

	if err := fill(root, tree.Root, parsed); err != nil {
		return reflect.Value{}, err
	}

	return root, nil
}

// fill sets the fields of the struct value dst from the children of node.
func fill(dst reflect.Value, node *schema.Node, parsed gen.Parsed) error {
	for _, child := range node.Children {
		field := dst.Field(child.Field.Index)

		if child.IsLeaf() {
			value, found := parsed[child.Leaf.Path]
			if !found {
				return fmt.Errorf("%w: no value parsed for %s", errors.ErrInternal, child.Leaf.Path)
			}
			if !value.Type().AssignableTo(field.Type()) {
				return fmt.Errorf("%w: %s: parsed %v, want %v", errors.ErrInternal, child.Leaf.Path, value.Type(), field.Type())
			}

			field.Set(value)

			continue
		}

		if err := fillNested(field, child, parsed); err != nil {
			return err
		}
	}

	return nil
}

func fillNested(field reflect.Value, node *schema.Node, parsed gen.Parsed) error {
	if field.Kind() != reflect.Ptr {
		return fill(field, node, parsed)
	}

	value := reflect.New(field.Type().Elem())
	if err := fill(value.Elem(), node, parsed); err != nil {
		return err
	}

	field.Set(value)

	return nil
}
