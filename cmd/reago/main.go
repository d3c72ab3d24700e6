package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗┌─┐┌─┐┌─┐┌─┐
  ╠╦╝├┤ ├─┤│ ┬│ │
  ╩╚═└─┘┴ ┴└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reago",
		Short: "Reactive state tracking and tree reconciliation for Go",
		Long: `Reago is a reactive UI runtime for Go.

State lives in observed values; computations track what they read and
re-run when it changes. Component render output is reconciled against a
live tree with the minimal set of edits. Tools:

  • demo   — serve an interactive demo app in the browser
  • bench  — measure the reactive core and the reconciler
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Reago ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
