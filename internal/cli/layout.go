package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/result"
)

// progressInterval is the tick budget used by the progress view when no
// time interval is configured, so the view gets to redraw.
const progressInterval = 30

// layoutCommand creates the layout command for computing word-cloud layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		refresh  bool
		progress bool
	)

	cmd := &cobra.Command{
		Use:   "layout <words-file>",
		Short: "Compute a word-cloud layout from a word list",
		Long: `Compute a word-cloud layout from a word list.

The input is either a JSON array of {"text", "value"} objects (.json) or a
text file with one "word [value]" entry per line. Words are placed largest
first, starting at the canvas center and searching outward along a spiral.
The result is written as JSON with every placed word's center-relative
position and bounds.

Options are read from the config file first; flags override them.
Sprites and layouts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.layoutOptions(cmd)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, progress)
		},
	}

	registerLayoutFlags(cmd)
	registerValueCompletions(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVar(&progress, "progress", false, "show an interactive progress view (terminal only)")

	return cmd
}

// layoutOptions merges the config file and command-line flags.
func (c *CLI) layoutOptions(cmd *cobra.Command) (pipeline.Options, error) {
	opts, err := c.loadConfig()
	if err != nil {
		return opts, err
	}
	if err := applyLayoutFlags(cmd, &opts); err != nil {
		return opts, err
	}
	opts.Logger = c.Logger
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// runLayout loads the words, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, progress bool) error {
	words, err := pipeline.Load(input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	tty := isTerminal(os.Stderr)
	if progress && !tty {
		logger.Warn("--progress needs a terminal, falling back to plain output")
		progress = false
	}

	var (
		l        result.Layout
		cacheHit bool
	)
	switch {
	case progress:
		l, cacheHit, err = c.layoutWithProgress(ctx, runner, words, opts)
	case tty:
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(words)))
		spinner.Start()
		l, cacheHit, err = runner.Layout(ctx, words, opts)
		if err != nil {
			spinner.StopWithError("Layout failed")
		} else {
			spinner.Stop()
		}
	default:
		prog := newProgress(logger)
		l, cacheHit, err = runner.Layout(ctx, words, opts)
		if err == nil {
			prog.done(fmt.Sprintf("Placed %d of %d words", len(l.Words), len(words)))
		}
	}
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if outputPath == "-" {
		data, err := result.Marshal(l)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := result.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Words), len(l.NotPlaced), len(l.Skipped), cacheHit)
	if len(l.Words) > 0 {
		printNewline()
		printWordTable(l.Words, wordTableRows)
	}
	if len(l.NotPlaced) > 0 {
		printWarning("%d words did not fit: %s", len(l.NotPlaced), truncateList(l.NotPlaced, 8))
	}
	return nil
}

// layoutWithProgress runs the layout under the bubbletea progress view.
func (c *CLI) layoutWithProgress(ctx context.Context, runner *pipeline.Runner, words []cloud.Word, opts pipeline.Options) (result.Layout, bool, error) {
	if l, ok := runner.Lookup(ctx, words, opts); ok {
		return l, true, nil
	}
	if opts.TimeIntervalMS == 0 {
		opts.TimeIntervalMS = progressInterval
	}
	job, err := runner.Start(ctx, words, opts)
	if err != nil {
		return result.Layout{}, false, err
	}
	runErr := runProgress(ctx, job)
	l, err := runner.Finish(ctx, job, runErr)
	return l, false, err
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func truncateList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + fmt.Sprintf(", … (+%d)", len(items)-n)
}
