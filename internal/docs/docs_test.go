package docs

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helptextSource = `package example

// Helptext should be printed as a description.
type Helptext struct {
	X int // Documentation 1

	// Documentation 2
	Y int

	Z int
	// Documentation 3
}

type (
	// Grouped is documented on its spec.
	Grouped struct {
		// First line.
		// Second line.
		A, B string

		C int
		// Documentation of D.
		D int
	}

	Undocumented struct {
		Value int
	}
)

func main() {
	// Local is declared in a function body.
	type Local struct {
		Port int // listening port
	}
}
`

type Helptext struct {
	X, Y, Z int
}

type Grouped struct {
	A, B string
	C, D int
}

type Local struct {
	Port int
}

type described struct {
	Name string `help:"from the tag"`
	Plain int
}

func (described) Description() string { return "  described type  " }

func newSource(t *testing.T) *Source {
	t.Helper()

	src := NewSource()
	require.NoError(t, src.Parse("example.go", helptextSource))

	return src
}

func TestSource_Resolve(t *testing.T) {
	t.Parallel()

	src := newSource(t)

	entry := src.Resolve(reflect.TypeOf(Helptext{}))
	assert.Equal(t, "Helptext should be printed as a description.", entry.Summary)
	assert.Equal(t, "Documentation 1", entry.Field("X"))
	assert.Equal(t, "Documentation 2", entry.Field("Y"))
	assert.Equal(t, "Documentation 3", entry.Field("Z"))

	grouped := src.Resolve(reflect.TypeOf(&Grouped{}))
	assert.Equal(t, "Grouped is documented on its spec.", grouped.Summary)
	assert.Equal(t, "First line.\nSecond line.", grouped.Field("A"))
	assert.Equal(t, "First line.\nSecond line.", grouped.Field("B"))
	assert.Empty(t, grouped.Field("C"), "a comment attached to the next field is not a following comment")
	assert.Equal(t, "Documentation of D.", grouped.Field("D"))

	local := src.Resolve(reflect.TypeOf(Local{}))
	assert.Equal(t, "Local is declared in a function body.", local.Summary)
	assert.Equal(t, "listening port", local.Field("Port"))

	assert.Equal(t, []string{"Grouped", "Helptext", "Local", "Undocumented"}, src.Types())
	assert.Empty(t, src.Resolve(reflect.TypeOf(described{})).Summary)
}

func TestSource_ParseError(t *testing.T) {
	t.Parallel()

	err := NewSource().Parse("broken.go", "package broken\ntype {")
	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing documentation source")
}

func TestChain(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeOf(described{})
	static := Static(typ, Entry{
		Summary: "static summary",
		Fields:  map[string]string{"Name": "static name", "Plain": "static plain"},
	})

	entry := Chain(Tags(), Describers(), static, nil).Resolve(typ)
	assert.Equal(t, "described type", entry.Summary)
	assert.Equal(t, "from the tag", entry.Field("Name"))
	assert.Equal(t, "static plain", entry.Field("Plain"))

	other := Chain(static).Resolve(reflect.TypeOf(Helptext{}))
	assert.Empty(t, other.Summary)
	assert.Empty(t, other.Fields)
}
