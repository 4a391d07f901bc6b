package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktlens/ktlens/internal/config"
	"github.com/ktlens/ktlens/internal/gitctx"
	"github.com/ktlens/ktlens/internal/output"
	"github.com/ktlens/ktlens/internal/review"
	"github.com/ktlens/ktlens/internal/rules"
	"github.com/ktlens/ktlens/internal/source"
)

var (
	flagFormat      string
	flagOut         string
	flagFailOn      string
	flagMaxFindings int
	flagThreads     int
	flagDisabled    string
	flagExclude     string
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review Kotlin sources and emit a report",
	Long: `Review gathers Kotlin source files and runs the rule catalog over them.

With no path, it reviews files changed in the working tree since HEAD.
With a path, it reviews every Kotlin file under that directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		runReview(target)
	},
}

func init() {
	reviewCmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, markdown, json)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on severity threshold (none, minor, major, critical)")
	reviewCmd.Flags().IntVar(&flagMaxFindings, "max-findings", 0, "Maximum number of findings")
	reviewCmd.Flags().IntVar(&flagThreads, "threads", 0, "Matcher worker count (default: GOMAXPROCS)")
	reviewCmd.Flags().StringVar(&flagDisabled, "disable", "", "Rule ids to disable (comma-separated)")
	reviewCmd.Flags().StringVar(&flagExclude, "exclude", "", "Path patterns to skip, gitignore syntax (comma-separated)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagMaxFindings > 0 {
		m["maxFindings"] = fmt.Sprintf("%d", flagMaxFindings)
	}
	if flagThreads > 0 {
		m["threads"] = fmt.Sprintf("%d", flagThreads)
	}
	if flagDisabled != "" {
		m["disabledRules"] = flagDisabled
	}
	if flagExclude != "" {
		m["excludes"] = flagExclude
	}
	return m
}

func runReview(target string) {
	cfgDir := target
	if cfgDir == "" {
		cfgDir = "."
	}
	cfg, err := config.Load(cfgDir, buildOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return
	}

	cat := rules.NewCatalog()
	if len(cfg.DisabledRules) > 0 {
		cat, err = cat.Without(cfg.DisabledRules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
	}

	gathered, err := gitctx.Gather(target, cfg.Excludes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	meta := source.ProjectMeta{
		TestDirs:       cfg.TestDirectories,
		FrameworkHints: cfg.FrameworkHints,
	}
	units, skipped := buildUnits(gathered.Files, meta)

	report, err := review.Run(cat, units, review.Options{
		Mode:   gathered.Mode,
		Target: target,
		Engine: review.EngineOptions{
			Threads:      cfg.Threads,
			MaxPairs:     cfg.MaxPairs,
			ContextLines: cfg.ContextLines,
		},
		MaxFindings: cfg.MaxFindings,
	})
	if err != nil {
		if errors.Is(err, review.ErrNoSources) {
			fmt.Fprintln(os.Stderr, "Error: no Kotlin source files to review")
			exitCode = ExitUsageError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	report.Diagnostics = append(skipped, report.Diagnostics...)

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if cfg.FailOn != "none" && cfg.FailOn != "" {
		for _, f := range report.Findings {
			if !f.Positive && rules.MeetsThreshold(f.Severity, cfg.FailOn) {
				exitCode = ExitFindings
				return
			}
		}
	}
}

// buildUnits converts gathered files into source units, downgrading
// malformed files to diagnostics so the rest of the corpus still runs.
func buildUnits(files []gitctx.File, meta source.ProjectMeta) ([]*source.Unit, []review.Diagnostic) {
	var units []*source.Unit
	var diags []review.Diagnostic
	for _, f := range files {
		u, err := source.NewUnit(f.Path, string(f.Data), meta)
		if err != nil {
			diags = append(diags, review.Diagnostic{Path: f.Path, Reason: err.Error()})
			continue
		}
		units = append(units, u)
	}
	return units, diags
}
