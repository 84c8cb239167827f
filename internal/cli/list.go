package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"feat/internal/usecase"
)

var listCounts bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered and configured features",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listCounts, "counts", "c", false, "scan each feature and show file and item counts")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	p := newPipeline()
	uc := usecase.NewListUseCase(p.resolver, p.collector)

	entries, err := uc.List(listCounts)
	if err != nil {
		return fail(err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "no features found")
		return nil
	}

	fmt.Fprintf(out, "%s\n\n", TitleStyle.Render(fmt.Sprintf("Found %d feature(s):", len(entries))))
	for _, e := range entries {
		fmt.Fprintf(out, "  %s: %s\n", CmdStyle.Render(e.Feature.Name), strings.Join(e.Feature.Paths, ", "))
		if listCounts {
			fmt.Fprintf(out, "    %s\n", SubtitleStyle.Render(fmt.Sprintf("files: %d, items: %d", e.Files, e.Items)))
		}
	}
	return nil
}
