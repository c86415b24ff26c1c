package parser

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flagerrors "github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/types"
)

type childConfig struct {
	Y int
}

type Common struct {
	Verbose bool `negatable:""`
}

type walkConfig struct {
	X          int
	MaxRetries int           `default:"3"   help:"retry count"`
	Timeout    time.Duration `long:"deadline"`
	Output     types.Path    `placeholder:"FILE"`
	Ignored    string        `flag:"-"`
	B          childConfig
	Ptr        *childConfig
	Common

	private string
}

func TestWalk(t *testing.T) {
	t.Parallel()

	fields, err := Walk(reflect.TypeOf(walkConfig{}), "")
	require.NoError(t, err)

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Path)
	}
	require.Equal(t, []string{"x", "max-retries", "deadline", "output", "b", "ptr", "common"}, names)

	retries := fields[1]
	assert.True(t, retries.HasDefault)
	assert.Equal(t, "3", retries.Default)
	assert.Equal(t, "retry count", GetUsage(retries.Tag))
	assert.False(t, retries.Nested)
	assert.Equal(t, 1, retries.Index)

	assert.Equal(t, "FILE", fields[3].Placeholder)

	child := fields[4]
	assert.True(t, child.Nested)
	assert.False(t, child.Embedded)
	assert.True(t, fields[5].Nested)

	embedded := fields[6]
	assert.True(t, embedded.Nested)
	assert.True(t, embedded.Embedded)
}

func TestWalk_Prefix(t *testing.T) {
	t.Parallel()

	fields, err := Walk(reflect.TypeOf(childConfig{}), "b.")
	require.NoError(t, err)
	require.Len(t, fields, 1)
	require.Equal(t, "b.y", fields[0].Path)
	require.Equal(t, "y", fields[0].FlagName)
}

func TestWalk_Negatable(t *testing.T) {
	t.Parallel()

	fields, err := Walk(reflect.TypeOf(Common{}), "")
	require.NoError(t, err)
	require.NotNil(t, fields[0].Negatable)
	require.Empty(t, *fields[0].Negatable)
}

func TestWalk_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		typ    reflect.Type
		expErr error
		msg    string
	}{
		{
			name:   "not a struct",
			typ:    reflect.TypeOf(0),
			expErr: flagerrors.ErrNotStruct,
		},
		{
			name: "unsupported channel",
			typ: reflect.TypeOf(struct {
				C chan int
			}{}),
			expErr: flagerrors.ErrUnsupportedType,
			msg:    "struct.C: unsupported field type: chan int",
		},
		{
			name: "duplicate flag names",
			typ: reflect.TypeOf(struct {
				A int `long:"port"`
				B int `long:"port"`
			}{}),
			expErr: flagerrors.ErrDuplicatePath,
		},
		{
			name: "unexported with tags",
			typ: reflect.TypeOf(struct {
				hidden int `help:"nope"`
			}{}),
			expErr: flagerrors.ErrUnexportedField,
			msg:    "field 'hidden' is not exported but has tags: help",
		},
		{
			name: "invalid tag",
			typ: reflect.TypeOf(struct {
				A int `long:"a`
			}{}),
			expErr: flagerrors.ErrInvalidTag,
		},
		{
			name: "default on nested",
			typ: reflect.TypeOf(struct {
				B childConfig `default:"1"`
			}{}),
			expErr: flagerrors.ErrInvalidTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Walk(tt.typ, "")
			require.ErrorIs(t, err, tt.expErr)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestCamelToFlag(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"X":              "x",
		"MaxRetries":     "max-retries",
		"HTTPServerPort": "http-server-port",
		"Level2Cache":    "level2-cache",
		"snake_case":     "snake-case",
	}

	for input, want := range tests {
		assert.Equal(t, want, CamelToFlag(input, "-"), "for %v", input)
	}
}
