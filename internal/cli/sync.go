package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"feat/internal/port"
	"feat/internal/usecase"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the generated block of every feature that has a doc",
	Long: `Update the documentation of every feature, in name order. Features
without a document are skipped; stubs are updated with a warning. A
failing feature does not stop the others, but makes the command exit 1.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	var history port.HistoryStore
	if !syncDryRun {
		h, err := openHistory()
		if err != nil {
			return fail(err)
		}
		if h != nil {
			defer h.Close()
			history = h
		}
	}

	p := newPipeline()
	uc := usecase.NewSyncUseCase(repoCtx, p.resolver, p.collector, p.locator, p.sync, history, logger)

	var bar *progressbar.ProgressBar
	progressCallback := func(done, total int, feature string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Syncing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(fmt.Sprintf("[cyan]Syncing[reset] %s", feature))
		bar.Set(done)
	}
	if !showProgress() {
		progressCallback = nil
	}

	result, err := uc.SyncAll(syncDryRun, progressCallback)
	if err != nil {
		return fail(err)
	}

	writeSyncReport(cmd, result)

	if result.Failed > 0 {
		return fail(fmt.Errorf("%d feature(s) failed to sync", result.Failed))
	}
	return nil
}

// showProgress gates the progress bar on an interactive stderr that is not
// already carrying debug logs.
func showProgress() bool {
	return !verbose && isatty.IsTerminal(os.Stderr.Fd())
}

func writeSyncReport(cmd *cobra.Command, result *usecase.SyncResult) {
	out := cmd.OutOrStdout()

	for _, e := range result.Entries {
		stub := ""
		if e.Stub {
			stub = WarningStyle.Render(" [stub]")
		}
		switch {
		case e.Skipped:
			fmt.Fprintf(out, "skip: %s (no doc file found)\n", e.Feature)
		case e.Err != nil:
			fmt.Fprintf(out, "%s %s: %v\n", ErrorStyle.Render("failed:"), e.Feature, e.Err)
		case result.DryRun:
			fmt.Fprintf(out, "would %s: %s%s\n", e.Action, repoCtx.Rel(e.DocPath), stub)
		default:
			fmt.Fprintf(out, "%s: %s%s\n", e.Action, repoCtx.Rel(e.DocPath), stub)
		}
	}

	parts := []string{fmt.Sprintf("%d updated", result.Updated)}
	if result.Stubs > 0 {
		parts = append(parts, fmt.Sprintf("%d stubs", result.Stubs))
	}
	if result.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", result.Unchanged))
	}
	if result.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", result.Skipped))
	}
	if result.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", result.Failed)))
	}

	label := "Summary:"
	if result.DryRun {
		label = "Summary (dry run):"
	}
	fmt.Fprintf(out, "\n%s %s\n", TitleStyle.Render(label), strings.Join(parts, ", "))
}
