package gen

import (
	"reflect"
	"strings"

	"github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/reeflective/structcli/internal/interfaces"
	"github.com/reeflective/structcli/internal/parser"
	"github.com/reeflective/structcli/internal/schema"
	"github.com/reeflective/structcli/internal/values"
	"github.com/reeflective/structcli/types"
)

const (
	completeTagName     = "complete"
	completeTagMaxParts = 2
)

var pathType = reflect.TypeOf(types.Path(""))

// Complete registers flag completions for the leaves of tree on cmd.
// A `complete` tag wins over a Completer implemented by the leaf type,
// which wins over the completions implied by the type itself.
func Complete(cmd *cobra.Command, tree *schema.Tree) *carapace.Carapace {
	comps := carapace.Gen(cmd)

	actions := make(carapace.ActionMap)

	for _, leaf := range tree.Leaves {
		if action, found := leafCompletion(leaf); found {
			actions[leaf.Path] = action
		}
	}

	if len(actions) > 0 {
		comps.FlagCompletion(actions)
	}

	return comps
}

func leafCompletion(leaf *schema.Leaf) (carapace.Action, bool) {
	if action, found := taggedCompletions(leaf.Field.Tag); found {
		return action, true
	}

	storage, val := leaf.NewValue()
	if completer := typeCompleter(storage.Elem()); completer != nil {
		return carapace.ActionCallback(completer), true
	}

	typ := leaf.Type
	if typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}

	switch {
	case typ == pathType:
		return carapace.ActionFiles(), true
	case values.IsBool(val) && typ.Kind() == reflect.Bool:
		return carapace.ActionValues("true", "false"), true
	}

	return carapace.Action{}, false
}

// typeCompleter checks for completer implementations on a type.
// It first checks the type itself, and if it's a slice and has no implementation,
// it then checks the slice's element type.
func typeCompleter(val reflect.Value) carapace.CompletionCallback {
	if completer := getCompleter(val); completer != nil {
		return completer
	}

	if val.Kind() == reflect.Slice || val.Kind() == reflect.Ptr {
		return getCompleter(reflect.New(val.Type().Elem()).Elem())
	}

	return nil
}

// getCompleter checks if a value (or a pointer to it) implements the Completer interface.
func getCompleter(val reflect.Value) carapace.CompletionCallback {
	if val.CanInterface() {
		if impl, ok := val.Interface().(interfaces.Completer); ok && impl != nil {
			return impl.Complete
		}
	}
	if val.CanAddr() {
		if impl, ok := val.Addr().Interface().(interfaces.Completer); ok && impl != nil {
			return impl.Complete
		}
	}

	return nil
}

// taggedCompletions builds a completion action with struct tag specs, like
//
//	File   string   `complete:"files,xml"`
//	Remote string   `complete:"files"`
//	Local  []string `complete:"dirs"`
func taggedCompletions(tag *parser.Tag) (carapace.Action, bool) {
	if tag == nil {
		return carapace.Action{}, false
	}

	compTag := tag.GetMany(completeTagName)
	if len(compTag) == 0 {
		return carapace.Action{}, false
	}

	actions := make([]carapace.Action, 0, len(compTag))

	for _, spec := range compTag {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		items := strings.SplitN(spec, ",", completeTagMaxParts)

		name, value := strings.TrimSpace(items[0]), ""
		if len(items) > 1 {
			value = items[1]
		}

		actions = append(actions, getCompletionAction(name, value))
	}

	if len(actions) == 0 {
		return carapace.Action{}, false
	}

	return carapace.Batch(actions...).ToA(), true
}

func getCompletionAction(name, value string) carapace.Action {
	var action carapace.Action

	switch strings.ToLower(name) {
	case "nospace":
		return action.NoSpace()
	case "files", "filterext":
		if value == "" {
			return carapace.ActionFiles()
		}

		return carapace.ActionFiles(strings.Split(value, ",")...)
	case "dirs", "filterdirs":
		return carapace.ActionDirectories()
	case "values":
		return carapace.ActionValues(strings.Split(value, ",")...)
	}

	return action
}
