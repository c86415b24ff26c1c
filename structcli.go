// Package structcli derives a complete command line interface from a Go
// struct type, and builds a populated value of that type from the command
// line.
//
// Every leaf field of the struct, recursively, becomes a flag named after
// its dotted path, as in --b.y for the field Y of the nested struct field B.
// Fields are required unless a default is given, either with a `default`
// tag or with an explicit default instance (see WithDefault). Field
// documentation comes from `help` tags, WithDocs, or the comments of the
// Go source declaring the type (see WithSource):
//
//	type Args struct {
//		X int // Documentation 1
//
//		// Documentation 2
//		Y int
//
//		Z int `default:"3"`
//		// Documentation 3
//	}
//
//	args := structcli.CLI[Args]()
package structcli

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reeflective/structcli/internal/defaults"
	"github.com/reeflective/structcli/internal/docs"
	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/gen"
	"github.com/reeflective/structcli/internal/help"
	"github.com/reeflective/structcli/internal/reconstruct"
	"github.com/reeflective/structcli/internal/schema"
)

const (
	exitHelp  = 0
	exitUsage = 2
)

// CLI parses the command line into a new value of type T, which must be a
// struct or a pointer to one. It prints the help message and exits with 0
// when asked for help, and prints a usage error and exits with 2 when the
// command line is invalid. It panics if T cannot be used as a command.
func CLI[T any](options ...Option) T {
	opts := defOpts().apply(options...)

	var zero T

	value, tree, err := opts.run(reflect.TypeFor[T]())

	var (
		helpErr  *HelpError
		usageErr *UsageError
	)

	switch {
	case err == nil:
		return value.Interface().(T)
	case stderrors.As(err, &helpErr):
		fmt.Fprint(opts.stdout, helpErr.Text)
		opts.exit(exitHelp)
	case stderrors.As(err, &usageErr):
		_ = help.New(opts.prog).WriteError(opts.stderr, tree, usageErr)
		opts.exit(exitUsage)
	default:
		panic(err)
	}

	return zero
}

// Parse parses the command line into a new value of type T, which must be
// a struct or a pointer to one. It prints nothing: help requests return a
// *HelpError, invalid command lines a *UsageError, and types that cannot
// be used as commands one of the schema errors.
func Parse[T any](options ...Option) (T, error) {
	opts := defOpts().apply(options...)

	var zero T

	value, _, err := opts.run(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return value.Interface().(T), nil
}

// Command returns a cobra command whose flags are derived from T. When
// executed, it calls run with the parsed value. Help and usage errors are
// rendered as with CLI, on the command outputs; other errors returned by
// run are returned by the command execution, without being printed.
func Command[T any](run func(cmd *cobra.Command, value T) error, options ...Option) (*cobra.Command, error) {
	opts := defOpts().apply(options...)

	typ := reflect.TypeFor[T]()

	tree, err := opts.schema(typ)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   opts.prog,
		Short: tree.Description,
	}

	err = gen.Bind(cmd, tree, func(cmd *cobra.Command, parsed gen.Parsed) error {
		value, err := opts.reconstruct(typ, tree, parsed)
		if err != nil {
			return err
		}

		return run(cmd, value.Interface().(T))
	})
	if err != nil {
		return nil, err
	}

	gen.Complete(cmd, tree)

	if opts.argsSet {
		cmd.SetArgs(opts.args)
	}
	cmd.SetOut(opts.stdout)
	cmd.SetErr(opts.stderr)

	return cmd, nil
}

// run builds the schema of typ, parses the command line and reconstructs
// the value. The tree is returned whenever it could be built.
func (o opts) run(typ reflect.Type) (reflect.Value, *schema.Tree, error) {
	tree, err := o.schema(typ)
	if err != nil {
		return reflect.Value{}, nil, err
	}

	args := o.args
	if !o.argsSet {
		args = os.Args[1:]
	}

	parsed, err := gen.Parse(tree, args)
	if stderrors.Is(err, errors.ErrHelp) {
		return reflect.Value{}, tree, o.helpError(tree)
	}
	if err != nil {
		o.logger.Debug("invalid command line", "prog", o.prog, "error", err)

		return reflect.Value{}, tree, err
	}

	o.logger.Debug("command line parsed", "prog", o.prog, "args", len(args))

	value, err := o.reconstruct(typ, tree, parsed)

	return value, tree, err
}

// schema builds the schema of typ with the configured defaults and docs.
func (o opts) schema(typ reflect.Type) (*schema.Tree, error) {
	if o.err != nil {
		return nil, o.err
	}

	root := typ
	for root.Kind() == reflect.Ptr {
		root = root.Elem()
	}
	if root.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %v", errors.ErrNotStruct, typ)
	}

	explicit, err := o.explicit(root)
	if err != nil {
		return nil, err
	}

	tree, err := schema.Build(root, explicit, o.resolver(root))
	if err != nil {
		return nil, err
	}

	if o.description != "" {
		tree.Description = o.description
	}

	o.logger.Debug("schema built", "type", root.String(), "leaves", len(tree.Leaves), "required", len(tree.Required()))

	return tree, nil
}

// explicit returns the explicit default instance, if any.
func (o opts) explicit(typ reflect.Type) (defaults.Instance, error) {
	instance, err := defaults.FromValue(o.instance, typ)
	if err != nil {
		return nil, err
	}

	if o.defaultsFile == "" {
		return instance, nil
	}

	loaded, err := defaults.LoadFile(o.defaultsFile)
	if err != nil {
		return nil, err
	}

	file, err := defaults.FromValue(loaded, typ)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("defaults loaded", "file", o.defaultsFile, "keys", len(loaded))

	return defaults.Overlay(instance, file), nil
}

// resolver chains the documentation sources, most explicit first.
func (o opts) resolver(typ reflect.Type) docs.Resolver {
	resolvers := []docs.Resolver{docs.Tags()}

	if len(o.fields) > 0 {
		resolvers = append(resolvers, docs.Static(typ, docs.Entry{Fields: o.fields}))
	}

	resolvers = append(resolvers, docs.Describers())

	if o.sources != nil {
		o.logger.Debug("documentation sourced", "types", o.sources.Types())
		resolvers = append(resolvers, o.sources)
	}

	return docs.Chain(resolvers...)
}

func (o opts) reconstruct(typ reflect.Type, tree *schema.Tree, parsed gen.Parsed) (reflect.Value, error) {
	value, err := reconstruct.Build(tree, parsed)
	if err != nil {
		return reflect.Value{}, err
	}

	o.logger.Debug("value reconstructed", "type", tree.Type.String())

	// Pointer command types get a pointer to the new value.
	for typ.Kind() == reflect.Ptr {
		ptr := reflect.New(value.Type())
		ptr.Elem().Set(value)
		value = ptr
		typ = typ.Elem()
	}

	return value, nil
}

func (o opts) helpError(tree *schema.Tree) error {
	var buf strings.Builder
	if err := help.New(o.prog).Write(&buf, tree); err != nil {
		return err
	}

	return &HelpError{Text: buf.String()}
}
