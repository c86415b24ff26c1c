package help

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/structcli/internal/defaults"
	"github.com/reeflective/structcli/internal/docs"
	"github.com/reeflective/structcli/internal/schema"
)

type helptext struct {
	X int
	Y int
	Z int `default:"3"`
}

func buildTree(t *testing.T, typ reflect.Type, explicit any) *schema.Tree {
	t.Helper()

	instance, err := defaults.FromValue(explicit, typ)
	require.NoError(t, err)

	resolver := docs.Chain(docs.Tags(), docs.Static(typ, docs.Entry{
		Summary: "This docstring should be printed as a description.",
		Fields: map[string]string{
			"X": "Documentation 1",
			"Y": "Documentation 2",
			"Z": "Documentation 3",
		},
	}))

	tree, err := schema.Build(typ, instance, resolver)
	require.NoError(t, err)

	return tree
}

func render(t *testing.T, tree *schema.Tree) string {
	t.Helper()

	var buf bytes.Buffer
	formatter := &Formatter{Prog: "prog", Width: 78}
	require.NoError(t, formatter.Write(&buf, tree))

	return buf.String()
}

func TestWrite(t *testing.T) {
	t.Parallel()

	out := render(t, buildTree(t, reflect.TypeOf(helptext{}), nil))

	assert.Equal(t, `usage: prog [-h] --x INT --y INT [--z INT]

This docstring should be printed as a description.

required arguments:
  --x INT     Documentation 1
  --y INT     Documentation 2

optional arguments:
  --z INT     Documentation 3 (default: 3)
  -h, --help  show this help message and exit
`, out)
}

func TestWrite_ExplicitDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		explicit any
	}{
		{"map", map[string]any{"z": 3}},
		{"map with placeholders", map[string]any{"x": nil, "y": nil, "z": 3}},
		{"struct with zero placeholders", helptext{Z: 3}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			out := render(t, buildTree(t, reflect.TypeOf(helptext{}), test.explicit))

			assert.Contains(t, out, "This docstring should be printed as a description.")
			assert.Contains(t, out, ":\n  --x INT     Documentation 1\n")
			assert.Contains(t, out, "--y INT     Documentation 2\n")
			assert.Contains(t, out, "--z INT     Documentation 3 (default: 3)\n")
		})
	}
}

func TestWrite_Layout(t *testing.T) {
	t.Parallel()

	type layout struct {
		Verbose          bool   `default:"false" negatable:""`
		VeryLongFlagName string `help:"goes on the next line"`
		Secret           string `hidden:"true" default:"s"`
		Desc             string `help:"a rather long description that has to be wrapped over several lines of help"`
	}

	typ := reflect.TypeOf(layout{})
	tree, err := schema.Build(typ, nil, docs.Tags())
	require.NoError(t, err)

	var buf bytes.Buffer
	formatter := &Formatter{Prog: "prog", Width: 60}
	require.NoError(t, formatter.Write(&buf, tree))
	out := buf.String()

	assert.Contains(t, out, "usage: prog [-h] --very-long-flag-name STRING --desc STRING\n")
	assert.Contains(t, out, "  --very-long-flag-name STRING\n                        goes on the next line\n")
	assert.Contains(t, out, "  --verbose, --no-verbose\n                        (default: false)\n")
	assert.NotContains(t, out, "secret")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 60, line)
	}
}

func TestUsage_Wraps(t *testing.T) {
	t.Parallel()

	type wide struct {
		Alpha, Bravo, Charlie, Delta, Echo string
	}

	tree, err := schema.Build(reflect.TypeOf(wide{}), nil, nil)
	require.NoError(t, err)

	formatter := &Formatter{Prog: "prog", Width: 40}
	assert.Equal(t, `usage: prog [-h] --alpha STRING
            --bravo STRING
            --charlie STRING
            --delta STRING --echo STRING`, formatter.Usage(tree))
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tree := buildTree(t, reflect.TypeOf(helptext{}), nil)

	var buf bytes.Buffer
	formatter := &Formatter{Prog: "prog", Width: 78}
	require.NoError(t, formatter.WriteError(&buf, tree, errors.New("the following arguments are required: --x")))

	assert.Equal(t, "usage: prog [-h] --x INT --y INT [--z INT]\n"+
		"prog: error: the following arguments are required: --x\n", buf.String())
}
