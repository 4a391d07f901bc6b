package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktlens/ktlens/internal/review"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "ktlens",
	Short: "Static review for Kotlin/Android code",
	Long:  "ktlens scans Kotlin source for architecture, concurrency, lifecycle, Compose, testing, and security anti-patterns and emits a structured review report.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ktlens version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "ktlens version %s\n", review.Version)
	},
}
