package docs

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Source resolves documentation from the comments of Go source files.
type Source struct {
	types map[string]Entry
}

// NewSource returns an empty source, to which files are added with Parse.
func NewSource() *Source {
	return &Source{types: make(map[string]Entry)}
}

// Parse reads the struct type declarations of a Go source file. The src
// argument is handled as in go/parser.ParseFile: if nil, filename is read.
// A type already declared by a previous file or scope keeps its first entry.
func (s *Source) Parse(filename string, src any) error {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parsing documentation source: %w", err)
	}

	ast.Inspect(file, func(node ast.Node) bool {
		decl, ok := node.(*ast.GenDecl)
		if !ok || decl.Tok != token.TYPE {
			return true
		}

		for _, spec := range decl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			structType, ok := typeSpec.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if _, exists := s.types[typeSpec.Name.Name]; exists {
				continue
			}

			entry := fieldDocs(fset, file, structType)
			entry.Summary = commentText(typeSpec.Doc)
			if entry.Summary == "" && len(decl.Specs) == 1 {
				entry.Summary = commentText(decl.Doc)
			}

			s.types[typeSpec.Name.Name] = entry
		}

		return true
	})

	return nil
}

// Resolve implements Resolver, matching types by name.
func (s *Source) Resolve(typ reflect.Type) Entry {
	return s.types[indirect(typ).Name()]
}

// Types returns the sorted names of all documented types.
func (s *Source) Types() []string {
	names := maps.Keys(s.types)
	slices.Sort(names)

	return names
}

// fieldDocs returns the documentation of each field, looking in order for
// a trailing comment on the same line, a comment block right above the
// field, and a comment starting right below it that belongs to no field.
func fieldDocs(fset *token.FileSet, file *ast.File, structType *ast.StructType) Entry {
	entry := Entry{Fields: make(map[string]string)}

	attached := make(map[*ast.CommentGroup]bool)
	for _, field := range structType.Fields.List {
		attached[field.Doc] = true
		attached[field.Comment] = true
	}

	for _, field := range structType.Fields.List {
		doc := commentText(field.Comment)
		if doc == "" {
			doc = commentText(field.Doc)
		}
		if doc == "" {
			doc = commentText(followingComment(fset, file, structType, field, attached))
		}
		if doc == "" {
			continue
		}

		for _, name := range fieldNames(field) {
			entry.Fields[name] = doc
		}
	}

	return entry
}

func followingComment(fset *token.FileSet, file *ast.File, structType *ast.StructType,
	field *ast.Field, attached map[*ast.CommentGroup]bool,
) *ast.CommentGroup {
	line := fset.Position(field.End()).Line

	for _, group := range file.Comments {
		if group.Pos() < field.End() || group.Pos() > structType.Fields.Closing {
			continue
		}
		if attached[group] {
			return nil
		}

		if fset.Position(group.Pos()).Line == line+1 {
			return group
		}

		return nil
	}

	return nil
}

func fieldNames(field *ast.Field) []string {
	if len(field.Names) > 0 {
		names := make([]string, 0, len(field.Names))
		for _, name := range field.Names {
			names = append(names, name.Name)
		}

		return names
	}

	// Embedded fields are named after their type.
	expr := field.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch typ := expr.(type) {
	case *ast.Ident:
		return []string{typ.Name}
	case *ast.SelectorExpr:
		return []string{typ.Sel.Name}
	}

	return nil
}

func commentText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}

	return strings.TrimSpace(group.Text())
}
