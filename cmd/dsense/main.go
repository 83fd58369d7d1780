package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dsense/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dsense",
	Short: "Symbol extraction for D completion tooling",
	Long:  `dsense turns parser snapshots into symbol and scope outlines for completion engines`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
