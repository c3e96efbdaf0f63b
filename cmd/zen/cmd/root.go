package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kotoedoff/zenith/internal/host"
	"github.com/kotoedoff/zenith/internal/interp"
	"github.com/kotoedoff/zenith/internal/repl"
)

var (
	// Version information (set by build flags)
	Version   = "0.4.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "zen [file]",
	Short: "Zenith interpreter",
	Long: `zen is a Go implementation of the Zenith scripting language.

Zenith is a small dynamically-typed language with:
  - Numbers, strings, booleans, arrays and dictionaries
  - First-class user-defined functions
  - Built-in crypto, filesystem, graphics and HTTP host capabilities

Run a script with 'zen app.zt' or start the interactive shell with
plain 'zen'.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			in := newInterp()
			defer in.Close()
			return repl.Start(in, Version)
		}
		return executeFile(args[0])
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	logrus.SetLevel(logrus.WarnLevel)
}

// newInterp wires the default host adapters into a fresh interpreter.
func newInterp() *interp.Interp {
	log := logrus.StandardLogger()
	return interp.New(
		interp.WithFileSystem(host.NewFS()),
		interp.WithCrypto(host.NewCrypto()),
		interp.WithHTTPServer(host.NewFileServer(log)),
		interp.WithGraphics(host.NewHeadlessGraphics(log)),
	)
}

func executeFile(path string) error {
	in := newInterp()
	defer in.Close()
	if err := in.RunFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
