// Package types provides flag value types with command-line semantics that
// the Go builtin types do not carry on their own.
package types

import (
	"fmt"
	"strconv"
)

// Path is a filesystem path given on the command line. It is kept verbatim:
// no tilde expansion, no cleaning. Its help tag is PATH and shells complete
// it with files.
type Path string

// Set implements the pflag.Value interface.
func (p *Path) Set(val string) error {
	*p = Path(val)

	return nil
}

// String implements the pflag.Value interface.
func (p *Path) String() string { return string(*p) }

// Type implements the pflag.Value interface.
func (p *Path) Type() string { return "path" }

// Counter is a flag type that increments its value each time it appears on the
// command line (`--verbose --verbose`), or takes an explicit count (`--verbose=3`).
type Counter int

// Set implements the pflag.Value interface.
func (c *Counter) Set(val string) error {
	if val == "" || val == "true" {
		*c++

		return nil
	}

	parsed, err := strconv.ParseInt(val, 0, 0)
	if err != nil {
		return fmt.Errorf("invalid value for counter: %w", err)
	}

	*c = Counter(parsed)

	return nil
}

// IsBoolFlag returns true, because Counter might be used without value.
func (c *Counter) IsBoolFlag() bool { return true }

// String implements the pflag.Value interface.
func (c *Counter) String() string { return strconv.Itoa(int(*c)) }

// Type implements the pflag.Value interface.
func (c *Counter) Type() string { return "count" }
