package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"feat/internal/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [feature]",
	Short: "Show recorded documentation updates",
	Long: `List the documentation updates recorded in .feat/history.db, newest
first. Recording is enabled with record_history = true in .feat.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, ok, err := openExistingHistory()
	if err != nil {
		return fail(err)
	}
	if !ok {
		fmt.Fprintln(out, "no history recorded")
		if !cfg.RecordHistory {
			fmt.Fprintf(out, "enable it with %s in %s\n", CmdStyle.Render("record_history = true"), CmdStyle.Render(".feat.toml"))
		}
		return nil
	}
	defer st.Close()

	feature := ""
	if len(args) > 0 {
		feature = args[0]
	}

	records, err := st.List(feature, historyLimit)
	if err != nil {
		return fail(fmt.Errorf("failed to read history: %w", err))
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no history recorded")
		return nil
	}

	for _, r := range records {
		action := string(r.Action)
		if r.Action == domain.ActionFailed {
			action = ErrorStyle.Render(action)
		}
		fmt.Fprintf(out, "%s  %s  %-10s %-12s %3d items  %s\n",
			SubtitleStyle.Render(r.At.Local().Format(time.DateTime)),
			shortID(r.RunID),
			action,
			CmdStyle.Render(r.Feature),
			r.Items,
			repoCtx.Rel(r.DocPath),
		)
		if r.Error != "" {
			fmt.Fprintf(out, "    %s\n", ErrorStyle.Render(r.Error))
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
