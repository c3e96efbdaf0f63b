// Package repl implements the interactive shell. Each input line is
// lexed and executed as a sequence of statements against a persistent
// interpreter, so variables and functions survive between lines.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/kotoedoff/zenith/internal/interp"
)

// Prompt is printed before each input line.
const Prompt = ">>> "

// Start runs the read-eval-print loop until the user types exit or
// quit, or standard input reaches EOF. The banner names the running
// version.
func Start(in *interp.Interp, version string) error {
	printBanner(version)

	rl, err := readline.New(Prompt)
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// Interrupt clears the line; EOF ends the session.
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		in.RunSource(line)
	}
}

func printBanner(version string) {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("Zenith Language v%s\n", version)
	fmt.Println("Interactive Shell - Type 'exit' to quit")
	fmt.Println("Features: crypto, graphics, http, files, modules")
	fmt.Println()
}
