package help

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/reeflective/structcli/internal/schema"
)

// WriteError writes the usage line of tree followed by the error, as in
//
//	usage: prog [-h] --x INT
//	prog: error: the following arguments are required: --x
func (f *Formatter) WriteError(w io.Writer, tree *schema.Tree, err error) error {
	label := color.New(color.FgRed, color.Bold)
	if isTerminal(w) {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	_, werr := fmt.Fprintf(w, "%s\n%s: %s %s\n", f.Usage(tree), f.Prog, label.Sprint("error:"), err)

	return werr
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}
