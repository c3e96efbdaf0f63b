package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Zenith file or inline expression",
	Long: `Execute a Zenith program from a file or inline source.

Examples:
  # Run a script file
  zen run app.zt

  # Evaluate inline source
  zen run -e "print(1 + 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	if evalExpr != "" {
		in := newInterp()
		defer in.Close()
		in.RunSource(evalExpr)
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
	return executeFile(args[0])
}
