// Package gen turns a command schema into pflag flags, matches command-line
// tokens against them, and collects the parsed value of every leaf.
package gen

import (
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/pflag"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/schema"
)

// Parsed maps the dotted path of every leaf to its value, either
// parsed from the command line or the leaf default.
type Parsed map[string]reflect.Value

// Parse matches argv (without the program name) against the flags of the
// tree. It returns errors.ErrHelp when help was requested, a usage error
// for user mistakes, and a schema error if flags cannot be registered.
func Parse(tree *schema.Tree, argv []string) (Parsed, error) {
	flags := pflag.NewFlagSet(tree.Type.Name(), pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	flags.SortFlags = false

	bindings, err := register(flags, tree)
	if err != nil {
		return nil, err
	}

	if err := flags.Parse(argv); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil, errors.ErrHelp
		}

		return nil, flagError(err, flags)
	}

	if err := checkArgs(flags.Args()); err != nil {
		return nil, err
	}

	return collect(bindings)
}

// flagError classifies an error returned by pflag while parsing flags,
// suggesting the closest known flag for unknown ones.
func flagError(err error, flags *pflag.FlagSet) error {
	msg := err.Error()

	switch {
	case strings.HasPrefix(msg, "invalid argument"):
		return errors.NewUsageError(errors.ErrCoercion, msg)
	case strings.HasPrefix(msg, unknownFlag):
		name := strings.TrimPrefix(strings.TrimPrefix(msg, unknownFlag), "--")
		if closest, found := suggest(name, visibleNames(flags)); found {
			msg = fmt.Sprintf("%s, did you mean --%s?", msg, closest)
		}

		return errors.NewUsageError(errors.ErrUnknownArgument, msg)
	case strings.HasPrefix(msg, "unknown shorthand flag"):
		return errors.NewUsageError(errors.ErrUnknownArgument, msg)
	default:
		return errors.NewUsageError(errors.ErrCoercion, msg)
	}
}

const unknownFlag = "unknown flag: "

func visibleNames(flags *pflag.FlagSet) []string {
	var names []string

	flags.VisitAll(func(flag *pflag.Flag) {
		if !flag.Hidden {
			names = append(names, flag.Name)
		}
	})

	return names
}

// checkArgs rejects tokens that match no flag.
func checkArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}

	return errors.NewUsageError(errors.ErrUnknownArgument,
		fmt.Sprintf("%s: %s", errors.ErrUnknownArgument, strings.Join(args, " ")))
}

// collect checks that all required flags were given, naming all missing
// ones in declaration order, and returns the value of every leaf.
func collect(bindings []binding) (Parsed, error) {
	var missing []string

	parsed := make(Parsed, len(bindings))

	for _, bind := range bindings {
		if bind.leaf.Required && !bind.changed() {
			missing = append(missing, "--"+bind.leaf.Path)

			continue
		}

		parsed[bind.leaf.Path] = bind.storage.Elem()
	}

	if len(missing) > 0 {
		return nil, errors.NewUsageError(errors.ErrMissingRequired,
			fmt.Sprintf("%s: %s", errors.ErrMissingRequired, strings.Join(missing, ", ")))
	}

	return parsed, nil
}
