package gen

import (
	"fmt"
	"reflect"

	"github.com/spf13/pflag"

	"github.com/reeflective/structcli/internal/errors"
	"github.com/reeflective/structcli/internal/schema"
	"github.com/reeflective/structcli/internal/values"
)

// helpFlag is handled by the flag set itself (or by cobra),
// so no leaf may use it.
const helpFlag = "help"

// flagSet describes interface,
// that's implemented by pflag library and required by flags.
type flagSet interface {
	VarPF(value pflag.Value, name, shorthand, usage string) *pflag.Flag
	Lookup(name string) *pflag.Flag
}

var _ flagSet = (*pflag.FlagSet)(nil)

// binding ties a leaf to the storage its flag parses into.
type binding struct {
	leaf    *schema.Leaf
	storage reflect.Value // pointer to the leaf value
	flag    *pflag.Flag
	negated *pflag.Flag // hidden --no-<name> flag, if any
}

func (b binding) changed() bool {
	return b.flag.Changed || (b.negated != nil && b.negated.Changed)
}

// register adds one flag per leaf of the tree to dst, each with its own
// storage initialized to the leaf default.
func register(dst flagSet, tree *schema.Tree) ([]binding, error) {
	bindings := make([]binding, 0, len(tree.Leaves))

	for _, leaf := range tree.Leaves {
		storage, val := leaf.NewValue()
		if val == nil {
			return nil, fmt.Errorf("%w: %s: no value parser for %v", errors.ErrInternal, leaf.Path, leaf.Type)
		}

		flag, err := registerFlag(dst, leaf, val)
		if err != nil {
			return nil, err
		}

		bind := binding{leaf: leaf, storage: storage, flag: flag}

		if leaf.Field.Negatable != nil && values.IsBool(val) {
			if bind.negated, err = registerNegatableFlag(dst, leaf, val); err != nil {
				return nil, err
			}
		}

		bindings = append(bindings, bind)
	}

	return bindings, nil
}

// registerFlag handles the creation and configuration of a single primary pflag.Flag.
func registerFlag(dst flagSet, leaf *schema.Leaf, val pflag.Value) (*pflag.Flag, error) {
	if err := checkName(dst, leaf.Path); err != nil {
		return nil, err
	}

	flag := dst.VarPF(val, leaf.Path, "", leaf.Help)
	flag.Hidden = leaf.Field.Hidden
	flag.Annotations = map[string][]string{}

	if values.IsBool(val) {
		flag.NoOptDefVal = "true"
	}
	if leaf.Required {
		flag.Annotations["flags"] = []string{"required"}
	}

	return flag, nil
}

// registerNegatableFlag handles the creation of the hidden --no-... variant for a boolean flag.
func registerNegatableFlag(dst flagSet, leaf *schema.Leaf, val pflag.Value) (*pflag.Flag, error) {
	noName := *leaf.Field.Negatable
	if noName == "" {
		noName = "no-" + leaf.Path
	}

	if err := checkName(dst, noName); err != nil {
		return nil, err
	}

	noFlag := dst.VarPF(&values.Negation{Leaf: val}, noName, "", "negates --"+leaf.Path)
	noFlag.Hidden = true

	// pflag passes "true", which sets the leaf to false.
	noFlag.NoOptDefVal = "true"

	return noFlag, nil
}

func checkName(dst flagSet, name string) error {
	if name == helpFlag {
		return fmt.Errorf("%w: --%s is reserved", errors.ErrDuplicatePath, name)
	}
	if dst.Lookup(name) != nil {
		return fmt.Errorf("%w: --%s is defined twice", errors.ErrDuplicatePath, name)
	}

	return nil
}
