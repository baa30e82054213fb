package main

import (
	"os"

	"github.com/ludo-technologies/srcmatch/internal/version"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Tests build a fresh tree per case.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "srcmatch",
		Short: "Find the file a code snippet came from",
		Long: `srcmatch attributes an anonymous code snippet to the candidate file it
most likely came from.

Every candidate and the snippet are turned into TF-IDF vectors over a shared
vocabulary, and candidates are ranked by cosine similarity to the snippet.

Features:
  • Deterministic ranking, ties go to the first candidate
  • Gitignore aware candidate collection with glob filters
  • Text, JSON, YAML, CSV and HTML reports
  • Batch matching of several snippets against one candidate set`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewMatchCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
