package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kotoedoff/zenith/internal/host"
)

var startCmd = &cobra.Command{
	Use:   "start http-server [port=N] [root=DIR]",
	Short: "Start the HTTP file server",
	Long: `Start the static file server and block until a line arrives on
standard input, then stop it.

Examples:
  zen start http-server                  # port 8000, serving .
  zen start http-server port=5000        # custom port
  zen start http-server root=./public    # custom root directory`,
	Args: cobra.MinimumNArgs(1),
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func startServer(_ *cobra.Command, args []string) error {
	if args[0] != "http-server" {
		return fmt.Errorf("unknown target %q (expected http-server)", args[0])
	}

	port := 8000
	root := "."
	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "port="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "port="))
			if err != nil {
				return fmt.Errorf("invalid port %q", arg)
			}
			port = n
		case strings.HasPrefix(arg, "root="):
			root = strings.TrimPrefix(arg, "root=")
		default:
			return fmt.Errorf("unknown option %q", arg)
		}
	}

	server := host.NewFileServer(logrus.StandardLogger())
	if err := server.Start(port, root); err != nil {
		return err
	}

	fmt.Printf("HTTP server running on http://localhost:%d\n", port)
	fmt.Printf("Serving files from: %s\n", root)
	fmt.Println("\nPress Enter to stop server...")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()

	return server.Stop()
}
