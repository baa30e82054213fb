package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/srcmatch/app"
	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/service"
)

// MatchCommand represents the match command
type MatchCommand struct {
	// Snippet sources in command line order
	snippets snippetList

	// Output format flags
	json       bool
	yaml       bool
	csv        bool
	html       bool
	outputPath string
	outputDir  string
	noOpen     bool

	// Ranked view
	top        int
	minScore   float64
	noScores   bool
	showTokens bool

	// Candidate collection
	recursive       bool
	includePatterns []string
	excludePatterns []string
	ignoredExt      []string
	noGitignore     bool
	maxFileSizeKB   int
	maxGoroutines   int
	timeout         time.Duration

	configPath string
}

// NewMatchCommand creates a new match command with default values
func NewMatchCommand() *MatchCommand {
	return &MatchCommand{
		top:           domain.DefaultTop,
		minScore:      domain.DefaultMinScore,
		recursive:     true,
		maxFileSizeKB: domain.DefaultMaxFileSizeKB,
		maxGoroutines: domain.DefaultMaxConcurrency,
		timeout:       domain.DefaultTimeoutSeconds * time.Second,
	}
}

// CreateCobraCommand creates the cobra command for snippet matching
func (c *MatchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [paths...]",
		Short: "Attribute a snippet to the candidate file it most likely came from",
		Long: `Rank candidate files by TF-IDF cosine similarity to a code snippet.

Candidates are collected from the given paths (default: current directory),
honoring .gitignore and the include/exclude patterns. The best match is the
highest scoring candidate, ties go to the candidate that sorts first.

Several --snippet/--text values are matched in one batch against the same
candidate set.

Examples:
  srcmatch match --snippet clip.go src/
  pbpaste | srcmatch match --stdin .
  srcmatch match --text "func handleLogin" --top 5 .
  srcmatch match --snippet a.go --snippet b.go --json .
  srcmatch match --snippet clip.go --json -o - . | jq .best_match
  srcmatch match --snippet clip.go --include "**/*.go" --exclude "vendor/**" .`,
		RunE: c.runMatch,
	}

	// Snippet sources
	cmd.Flags().VarP(&snippetValue{list: &c.snippets, source: domain.SnippetSourceFile}, "snippet", "s", "Snippet file (repeatable)")
	cmd.Flags().Var(&snippetValue{list: &c.snippets, source: domain.SnippetSourceText}, "text", "Snippet given as a literal string (repeatable)")
	cmd.Flags().Var(&stdinValue{list: &c.snippets}, "stdin", "Read the snippet from stdin")
	cmd.Flags().Lookup("stdin").NoOptDefVal = "true"

	// Output format flags
	cmd.Flags().BoolVar(&c.json, "json", false, "Generate JSON report file")
	cmd.Flags().BoolVar(&c.yaml, "yaml", false, "Generate YAML report file")
	cmd.Flags().BoolVar(&c.csv, "csv", false, "Generate CSV report file")
	cmd.Flags().BoolVar(&c.html, "html", false, "Generate HTML report file")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Report file path ('-' writes to stdout)")
	cmd.Flags().StringVar(&c.outputDir, service.FlagOutputDir, "", "Directory for generated report files")
	cmd.Flags().BoolVar(&c.noOpen, "no-open", false, "Don't auto-open HTML in browser")

	// Ranked view
	cmd.Flags().IntVar(&c.top, service.FlagTop, domain.DefaultTop, "Number of ranked candidates to show (0 = all)")
	cmd.Flags().Float64Var(&c.minScore, service.FlagMinScore, domain.DefaultMinScore, "Hide candidates scoring below this value")
	cmd.Flags().BoolVar(&c.noScores, service.FlagNoScores, false, "Only report the best match")
	cmd.Flags().BoolVar(&c.showTokens, service.FlagShowTokens, false, "Show token counts per candidate")

	// Candidate collection
	cmd.Flags().BoolVar(&c.recursive, service.FlagRecursive, true, "Recursively collect candidates from subdirectories")
	cmd.Flags().StringSliceVar(&c.includePatterns, service.FlagInclude, nil, "Include file patterns")
	cmd.Flags().StringSliceVar(&c.excludePatterns, service.FlagExclude, nil, "Exclude file patterns")
	cmd.Flags().StringSliceVar(&c.ignoredExt, service.FlagIgnoredExt, nil, "File extensions that are never candidates")
	cmd.Flags().BoolVar(&c.noGitignore, service.FlagNoGitignore, false, "Do not honor .gitignore files")
	cmd.Flags().IntVar(&c.maxFileSizeKB, service.FlagMaxFileSize, domain.DefaultMaxFileSizeKB, "Skip candidates larger than this many KB (0 = no limit)")
	cmd.Flags().IntVar(&c.maxGoroutines, service.FlagConcurrency, domain.DefaultMaxConcurrency, "Maximum parallel file reads")
	cmd.Flags().DurationVar(&c.timeout, service.FlagTimeout, domain.DefaultTimeoutSeconds*time.Second, "Timeout for candidate collection")

	// Configuration
	cmd.Flags().StringVarP(&c.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

func (c *MatchCommand) runMatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	if err := initLogging(c.configPath, getTargetPathFromArgs(args), verboseFlag(cmd)); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	}

	err := c.execute(cmd, args)
	if err != nil {
		c.reportError(cmd.ErrOrStderr(), err)
	}
	return err
}

func (c *MatchCommand) execute(cmd *cobra.Command, args []string) error {
	request, err := c.createMatchRequest(cmd, args)
	if err != nil {
		return err
	}

	reader := service.NewCandidateReader()
	if isInteractiveEnvironment() && !verboseFlag(cmd) {
		reader.WithProgress(service.NewProgressManager())
	}

	snippets, err := app.ResolveSnippets(reader, c.snippetArgs(), cmd.InOrStdin())
	if err != nil {
		return err
	}

	useCase, err := app.NewMatchUseCaseBuilder().
		WithService(service.NewMatchService(reader)).
		WithFormatter(service.NewOutputFormatter().WithColor(useColor(cmd.OutOrStdout()))).
		WithConfigLoader(service.NewMatchConfigurationLoader()).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create match use case: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if len(snippets) == 1 {
		request.Snippet = snippets[0]
		return useCase.Execute(ctx, request)
	}
	return useCase.ExecuteBatch(ctx, request, snippets)
}

// createMatchRequest builds the request from flags. Only flags in
// ExplicitFlags override the configuration file.
func (c *MatchCommand) createMatchRequest(cmd *cobra.Command, paths []string) (domain.MatchRequest, error) {
	format, err := c.outputFormat()
	if err != nil {
		return domain.MatchRequest{}, err
	}

	return domain.MatchRequest{
		Paths: paths,

		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      c.outputPath,
		OutputDirectory: c.outputDir,
		NoOpen:          c.noOpen || !isInteractiveEnvironment(),

		Top:        c.top,
		MinScore:   c.minScore,
		ShowScores: domain.BoolPtr(!c.noScores),
		ShowTokens: domain.BoolPtr(c.showTokens),

		Recursive:         domain.BoolPtr(c.recursive),
		IncludePatterns:   c.includePatterns,
		ExcludePatterns:   c.excludePatterns,
		IgnoredExtensions: c.ignoredExt,
		RespectGitignore:  domain.BoolPtr(!c.noGitignore),
		MaxFileSizeKB:     c.maxFileSizeKB,
		MaxConcurrency:    c.maxGoroutines,
		Timeout:           c.timeout,

		ConfigPath:    c.configPath,
		ExplicitFlags: GetExplicitFlags(cmd),
	}, nil
}

// outputFormat returns the format chosen by flags, or "" so the
// configured format applies
func (c *MatchCommand) outputFormat() (domain.OutputFormat, error) {
	flags := service.FormatFlags{HTML: c.html, JSON: c.json, CSV: c.csv, YAML: c.yaml}
	if !flags.HTML && !flags.JSON && !flags.CSV && !flags.YAML {
		return "", nil
	}
	return service.NewOutputFormatResolver().Resolve(flags, "")
}

// snippetArgs lists the snippet sources in the order they were given, so
// batch results line up with the command line
func (c *MatchCommand) snippetArgs() []app.SnippetArg {
	return c.snippets.args
}

// reportError prints the categorized error with recovery suggestions
func (c *MatchCommand) reportError(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "❌ %s: %s\n", categorized.Category, categorized.Message)
	if categorized.Message != err.Error() {
		fmt.Fprintf(w, "   %v\n", err)
	}

	if suggestions := categorizer.GetRecoverySuggestions(categorized.Category); len(suggestions) > 0 {
		fmt.Fprintf(w, "\n💡 Suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  • %s\n", s)
		}
	}
}

func verboseFlag(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

// NewMatchCmd creates and returns the match cobra command
func NewMatchCmd() *cobra.Command {
	return NewMatchCommand().CreateCobraCommand()
}
