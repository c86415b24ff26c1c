package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/structcli/internal/defaults"
	"github.com/reeflective/structcli/internal/docs"
	flagerrors "github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/types"
)

type retry struct {
	MaxRetries int           `default:"3" help:"attempts before giving up"`
	Backoff    time.Duration `default:"1s"`
}

type Common struct {
	Verbose bool `help:"verbose output"`
}

type server struct {
	Common

	Addr  string `help:"listen address"`
	Root  types.Path
	Retry retry
	TLS   *struct {
		Cert string `default:"cert.pem"`
	}
	Tags []string `default:"a,b"`
}

func paths(tree *Tree) []string {
	var out []string
	for _, leaf := range tree.Leaves {
		out = append(out, leaf.Path)
	}

	return out
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tree, err := Build(reflect.TypeOf(&server{}), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf(server{}), tree.Type)
	assert.Equal(t, []string{
		"verbose", "addr", "root", "retry.max-retries", "retry.backoff", "tls.cert", "tags",
	}, paths(tree))

	leaf, found := tree.Lookup("retry.max-retries")
	require.True(t, found)
	assert.False(t, leaf.Required)
	assert.Equal(t, defaults.Intrinsic, leaf.Default.Source)
	assert.Equal(t, "attempts before giving up", leaf.Help)
	assert.Equal(t, "INT", leaf.TypeTag)
	assert.True(t, leaf.ShowsDefault())
	assert.Equal(t, "3", leaf.DefaultText())

	leaf, _ = tree.Lookup("root")
	assert.True(t, leaf.Required)
	assert.Equal(t, "PATH", leaf.TypeTag)

	leaf, _ = tree.Lookup("retry.backoff")
	assert.Equal(t, "DURATION", leaf.TypeTag)
	assert.Equal(t, "1s", leaf.DefaultText())

	// Bools without default stay required.
	leaf, _ = tree.Lookup("verbose")
	assert.True(t, leaf.Required)

	var required []string
	for _, leaf := range tree.Required() {
		required = append(required, leaf.Path)
	}
	assert.Equal(t, []string{"verbose", "addr", "root"}, required)

	// Root node children follow declaration order.
	require.Len(t, tree.Root.Children, 6)
	assert.False(t, tree.Root.Children[0].IsLeaf())
	assert.True(t, tree.Root.Children[1].IsLeaf())
}

func TestBuild_ExplicitDefaults(t *testing.T) {
	t.Parallel()

	explicit, err := defaults.FromValue(map[string]any{
		"addr":  ":8080",
		"root":  nil,
		"retry": map[string]any{"max-retries": 5},
	}, reflect.TypeOf(server{}))
	require.NoError(t, err)

	tree, err := Build(reflect.TypeOf(server{}), explicit, nil)
	require.NoError(t, err)

	leaf, _ := tree.Lookup("addr")
	assert.False(t, leaf.Required)
	assert.Equal(t, ":8080", leaf.DefaultText())

	leaf, _ = tree.Lookup("root")
	assert.False(t, leaf.Required)
	assert.False(t, leaf.ShowsDefault())

	leaf, _ = tree.Lookup("retry.max-retries")
	assert.Equal(t, defaults.Explicit, leaf.Default.Source)
	assert.Equal(t, 5, leaf.Default.Value.Interface())
}

func TestBuild_Docs(t *testing.T) {
	t.Parallel()

	type documented struct {
		X int
		Y int `help:"from tag"`
	}

	typ := reflect.TypeOf(documented{})
	resolver := docs.Chain(docs.Tags(), docs.Static(typ, docs.Entry{
		Summary: "Summary line.",
		Fields:  map[string]string{"X": "static x", "Y": "static y"},
	}))

	tree, err := Build(typ, nil, resolver)
	require.NoError(t, err)

	assert.Equal(t, "Summary line.", tree.Description)
	x, _ := tree.Lookup("x")
	y, _ := tree.Lookup("y")
	assert.Equal(t, "static x", x.Help)
	assert.Equal(t, "from tag", y.Help)
}

func TestNewValue_CopiesDefault(t *testing.T) {
	t.Parallel()

	tree, err := Build(reflect.TypeOf(server{}), nil, nil)
	require.NoError(t, err)

	leaf, _ := tree.Lookup("tags")
	ptr, value := leaf.NewValue()
	require.NoError(t, value.Set("c"))

	assert.Equal(t, []string{"c"}, ptr.Elem().Interface())
	assert.Equal(t, []string{"a", "b"}, leaf.Default.Value.Interface())
}

type node struct {
	Name string
	Next *node
}

type collideA struct{ Port int }

type collideB struct{ Port int }

type collision struct {
	collideA
	collideB
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
		want error
	}{
		{"not a struct", reflect.TypeOf(0), flagerrors.ErrNotStruct},
		{"recursive", reflect.TypeOf(node{}), flagerrors.ErrUnsupportedType},
		{"embedded collision", reflect.TypeOf(collision{}), flagerrors.ErrDuplicatePath},
		{"unsupported", reflect.TypeOf(struct{ C chan int }{}), flagerrors.ErrUnsupportedType},
		{"invalid default", reflect.TypeOf(struct {
			N int `default:"x"`
		}{}), flagerrors.ErrInvalidDefault},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tree, err := Build(test.typ, nil, nil)
			require.ErrorIs(t, err, test.want)
			assert.Nil(t, tree)
		})
	}
}

func TestBuild_UnknownDefaultKeys(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeOf(server{})

	tests := []struct {
		name     string
		explicit map[string]any
		wantErr  string
	}{
		{"known keys", map[string]any{
			"verbose": true, "Addr": ":80", "retry": map[string]any{"max-retries": 1},
			"tls": map[string]any{"cert": "c.pem"},
		}, ""},
		{"typo", map[string]any{"adr": ":80"}, "unknown keys: adr"},
		{"embedded struct name", map[string]any{"Common": map[string]any{"verbose": true}}, "unknown keys: Common"},
		{"nested typo", map[string]any{"retry": map[string]any{"max-retires": 1, "backof": "1s"}},
			"unknown keys: retry.backof, retry.max-retires"},
		{"pointer nested typo", map[string]any{"tls": map[string]any{"key": "k.pem"}}, "unknown keys: tls.key"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			explicit, err := defaults.FromValue(test.explicit, typ)
			require.NoError(t, err)

			tree, err := Build(typ, explicit, nil)
			if test.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, flagerrors.ErrInvalidDefault)
			require.ErrorContains(t, err, test.wantErr)
			assert.Nil(t, tree)
		})
	}
}
