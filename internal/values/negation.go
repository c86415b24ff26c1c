package values

import (
	"strconv"
)

// Negation is the value of the --no-<path> flag of a negatable bool leaf.
// Setting it to true stores false in the leaf, and the reverse.
type Negation struct {
	Leaf Value
}

func (n *Negation) Set(s string) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	return n.Leaf.Set(strconv.FormatBool(!val))
}

// String is the negation of the leaf value, empty while the leaf is unset.
func (n *Negation) String() string {
	val, err := strconv.ParseBool(n.Leaf.String())
	if err != nil {
		return ""
	}

	return strconv.FormatBool(!val)
}

func (n *Negation) Type() string { return "bool" }

// IsBoolFlag lets --no-<path> be given without an argument.
func (n *Negation) IsBoolFlag() bool { return true }
