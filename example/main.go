// Example is a small server launcher whose command line is derived from
// the config struct below, documented by its own source comments.
package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reeflective/structcli"
	"github.com/reeflective/structcli/types"
)

//go:embed main.go
var source string

const defaultsFile = "serve.toml"

// TLS settings, disabled unless both files are given.
type TLS struct {
	Cert *types.Path // certificate chain, PEM encoded
	Key  *types.Path // private key, PEM encoded
}

// Database connection.
type Database struct {
	// Host and port of the database server.
	Addr string `default:"localhost:5432"`

	Timeout time.Duration `default:"5s"`
	// Dial timeout, including the handshake.

	Pool int `default:"4" placeholder:"CONNS"`
}

// Config serves files from a directory, with a connection to a database.
type Config struct {
	Root    types.Path    // directory to serve
	Listen  string        `default:":8080"` // listening address
	Verbose types.Counter `default:"0"`     // repeat for more logs
	Quiet   bool          `default:"false" negatable:""`
	Tags    []string      `default:"web"` // tags announced to peers

	DB  Database
	TLS *TLS
}

func main() {
	options := []structcli.Option{
		structcli.WithProgramName("serve"),
		structcli.WithSource("main.go", source),
	}

	// Defaults can be overridden by a local file.
	if _, err := os.Stat(defaultsFile); err == nil {
		options = append(options, structcli.WithDefaultsFile(defaultsFile))
	}

	cmd, err := structcli.Command(func(cmd *cobra.Command, cfg Config) error {
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", cfg)

		return nil
	}, options...)
	if err != nil {
		panic(err)
	}

	if err := cmd.Execute(); err != nil {
		// Usage errors are already printed.
		var usage *structcli.UsageError
		if !errors.As(err, &usage) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}

		os.Exit(2)
	}
}
