// Package help renders argparse-style usage lines, help messages and
// usage errors for a command schema.
package help

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/reeflective/structcli/internal/schema"
	"github.com/reeflective/structcli/internal/values"
)

const (
	paddingBeforeOption                 = 2
	distanceBetweenOptionAndDescription = 2
	maxHelpPosition                     = 24
	defaultColumns                      = 80
	minWrapLength                       = 11
)

const (
	requiredTitle = "required arguments"
	optionalTitle = "optional arguments"
	helpLine      = "-h, --help"
	helpText      = "show this help message and exit"
)

// Formatter renders the help of one program.
type Formatter struct {
	Prog  string
	Width int // text width, usually the terminal columns minus 2
}

// New returns a formatter for prog, sized to the terminal.
func New(prog string) *Formatter {
	return &Formatter{Prog: prog, Width: Columns() - 2}
}

// Columns returns the terminal width: the COLUMNS environment
// variable, else the size of stdout, else 80.
func Columns() int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			return cols
		}
	}

	return defaultColumns
}

// action is one line of an argument section.
type action struct {
	invocation string // --x INT
	usage      string // --x INT, or [--x INT] if optional
	help       string
}

// Write writes the full help message of tree to w.
func (f *Formatter) Write(w io.Writer, tree *schema.Tree) error {
	buf := bufio.NewWriter(w)

	required, optional := actions(tree)

	fmt.Fprintln(buf, f.Usage(tree))

	if tree.Description != "" {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, f.wrap(tree.Description, f.Width, ""))
	}

	help := action{invocation: helpLine, help: helpText}
	column := helpPosition(append(append([]action{help}, required...), optional...))

	if len(required) > 0 {
		f.writeSection(buf, requiredTitle, required, column)
	}

	// The help flag closes the optional section.
	f.writeSection(buf, optionalTitle, append(optional, help), column)

	return buf.Flush()
}

// Usage returns the usage line of tree, wrapped to the formatter width.
func (f *Formatter) Usage(tree *schema.Tree) string {
	required, optional := actions(tree)

	parts := []string{"[-h]"}
	for _, act := range append(required, optional...) {
		parts = append(parts, act.usage)
	}

	prefix := "usage: " + f.Prog + " "
	indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))

	var (
		lines []string
		line  = prefix
	)

	for i, part := range parts {
		if i > 0 && utf8.RuneCountInString(line)+1+utf8.RuneCountInString(part) > f.Width {
			lines = append(lines, strings.TrimRight(line, " "))
			line = indent
		} else if line != prefix && line != indent {
			line += " "
		}
		line += part
	}

	return strings.Join(append(lines, line), "\n")
}

func (f *Formatter) writeSection(buf io.Writer, title string, section []action, column int) {
	fmt.Fprintf(buf, "\n%s:\n", title)

	for _, act := range section {
		line := strings.Repeat(" ", paddingBeforeOption) + act.invocation

		if act.help == "" {
			fmt.Fprintln(buf, line)

			continue
		}

		// Invocations too long for the column get their help on the next line.
		written := utf8.RuneCountInString(line)
		if written+distanceBetweenOptionAndDescription > column {
			fmt.Fprintln(buf, line)
			line = strings.Repeat(" ", column)
		} else {
			line += strings.Repeat(" ", column-written)
		}

		prefix := strings.Repeat(" ", column)
		fmt.Fprintln(buf, line+f.wrap(act.help, f.Width-column, prefix))
	}
}

// wrap wraps text at wrapLen, prefixing continuation lines.
func (f *Formatter) wrap(text string, wrapLen int, prefix string) string {
	if wrapLen < minWrapLength {
		wrapLen = minWrapLength
	}

	wrapped := wordwrap.WrapString(strings.TrimSpace(text), uint(wrapLen))
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n"+prefix)
}

// helpPosition is the column where help texts start.
func helpPosition(all []action) int {
	longest := 0
	for _, act := range all {
		if length := utf8.RuneCountInString(act.invocation); length > longest {
			longest = length
		}
	}

	return min(longest+paddingBeforeOption+distanceBetweenOptionAndDescription, maxHelpPosition)
}

// actions returns the visible leaves of tree,
// split by required-ness, in declaration order.
func actions(tree *schema.Tree) (required, optional []action) {
	for _, leaf := range tree.Leaves {
		if leaf.Field.Hidden {
			continue
		}

		act := newAction(leaf)
		if leaf.Required {
			required = append(required, act)
		} else {
			act.usage = "[" + act.usage + "]"
			optional = append(optional, act)
		}
	}

	return required, optional
}

func newAction(leaf *schema.Leaf) action {
	_, val := leaf.NewValue()

	flag := "--" + leaf.Path
	invocation := flag

	switch {
	case values.IsBool(val) && leaf.Field.Negatable != nil:
		noName := *leaf.Field.Negatable
		if noName == "" {
			noName = "no-" + leaf.Path
		}
		invocation = flag + ", --" + noName
	case values.IsBool(val):
	case leaf.TypeTag != "":
		flag += " " + leaf.TypeTag
		invocation = flag
	}

	help := leaf.Help
	if leaf.ShowsDefault() {
		help = strings.TrimSpace(fmt.Sprintf("%s (default: %s)", help, leaf.DefaultText()))
	}

	return action{invocation: invocation, usage: flag, help: help}
}
