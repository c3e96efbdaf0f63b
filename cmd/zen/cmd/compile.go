package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kotoedoff/zenith/internal/host"
)

var (
	compileOutput string
	compileTCC    bool
	compileGCC    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a script to a native binary",
	Long: `Compile a Zenith script to a native binary through the host C
toolchain adapter. Compilation itself is a host concern; without a
toolchain host this command reports the request and fails.

Examples:
  zen compile app.zt --tcc -o myapp
  zen compile app.zt --gcc`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "a.out", "output file")
	compileCmd.Flags().BoolVar(&compileTCC, "tcc", false, "use the TCC compiler")
	compileCmd.Flags().BoolVar(&compileGCC, "gcc", false, "use the GCC compiler")
}

func compileScript(_ *cobra.Command, args []string) error {
	inputFile := args[0]
	if _, err := os.Stat(inputFile); err != nil {
		return fmt.Errorf("cannot open file %s: %w", inputFile, err)
	}

	compiler := "gcc"
	if compileTCC {
		compiler = "tcc"
	}

	toolchain := host.NewToolchain(logrus.StandardLogger())
	if err := toolchain.Compile(inputFile, compileOutput, compiler); err != nil {
		return fmt.Errorf("compiling %s with %s: %w", inputFile, compiler, err)
	}
	fmt.Printf("Compilation successful: ./%s\n", compileOutput)
	return nil
}
