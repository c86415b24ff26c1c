package structcli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reeflective/structcli/internal/docs"
)

// Option configures how a command line is derived from a struct type.
type Option func(o *opts)

type opts struct {
	args         []string
	argsSet      bool
	prog         string
	description  string
	instance     any
	defaultsFile string
	sources      *docs.Source
	fields       map[string]string
	stdout       io.Writer
	stderr       io.Writer
	exit         func(code int)
	logger       *slog.Logger

	// err is the first error of an option, returned when parsing.
	err error
}

func (o opts) apply(optFuncs ...Option) opts {
	for _, optFunc := range optFuncs {
		optFunc(&o)
	}

	return o
}

func defOpts() opts {
	return opts{
		prog:   filepath.Base(os.Args[0]),
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithArgs sets the command-line tokens to parse, without the program
// name. By default, the process arguments are parsed.
func WithArgs(args ...string) Option {
	return func(o *opts) {
		o.args = args
		o.argsSet = true
	}
}

// WithProgramName sets the program name shown in usage lines.
func WithProgramName(name string) Option {
	return func(o *opts) { o.prog = name }
}

// WithDescription sets the description printed below the usage line,
// in place of the summary documented on the type.
func WithDescription(description string) Option {
	return func(o *opts) { o.description = description }
}

// WithDefault sets the explicit default instance: a value of the command
// type, a pointer to one, or a map[string]any keyed by flag names or Go
// field names, where nested maps hold the defaults of nested structs.
//
// Explicit defaults win over `default` tags. Fields bound to the zero value
// of a struct instance, or to nil in a map, are placeholders: they are no
// longer required and take their zero value, but display no default.
func WithDefault(instance any) Option {
	return func(o *opts) { o.instance = instance }
}

// WithDefaultsFile reads explicit defaults from a TOML (.toml) or YAML
// (.yaml, .yml) document, shaped like a map given to WithDefault.
// Values given with WithDefault win over those of the file.
func WithDefaultsFile(path string) Option {
	return func(o *opts) { o.defaultsFile = path }
}

// WithSource parses Go source declaring the command types, so that their
// comments document the command. The src argument is a string, []byte or
// io.Reader; if nil, the filename is read. Types are matched by name.
func WithSource(filename string, src any) Option {
	return func(o *opts) {
		if o.sources == nil {
			o.sources = docs.NewSource()
		}
		if err := o.sources.Parse(filename, src); err != nil && o.err == nil {
			o.err = err
		}
	}
}

// WithSourceFile is WithSource reading the Go file at path.
func WithSourceFile(path string) Option {
	return WithSource(path, nil)
}

// WithDocs documents the fields of the command type, keyed by Go field
// name. Documentation given in tags wins.
func WithDocs(fields map[string]string) Option {
	return func(o *opts) {
		if o.fields == nil {
			o.fields = make(map[string]string, len(fields))
		}
		for name, doc := range fields {
			o.fields[name] = doc
		}
	}
}

// WithOutput sets the writers for help messages and usage errors.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *opts) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithExit sets the function called by CLI to terminate the
// program, with 0 after help and 2 after a usage error.
func WithExit(exit func(code int)) Option {
	return func(o *opts) { o.exit = exit }
}

// WithLogger sets the logger receiving debug records.
// By default, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *opts) { o.logger = logger }
}
