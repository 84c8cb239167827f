package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"feat/internal/domain"
	"feat/internal/usecase"
)

var updateDoc string

var updateCmd = &cobra.Command{
	Use:   "update <feature>",
	Short: "Refresh the generated block in a feature's doc",
	Long: `Scan a feature and write its API surface block into the feature's
documentation file. When no document exists a .stub.md file is created
under the docs root; rename it once the prose is written.

Examples:
  feat update alpha
  feat update alpha --doc README.md`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateDoc, "doc", "", "update this document instead of locating one")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	history, err := openHistory()
	if err != nil {
		return fail(err)
	}
	if history != nil {
		defer history.Close()
	}

	p := newPipeline()
	uc := usecase.NewUpdateUseCase(repoCtx, p.resolver, p.collector, p.locator, p.sync, history, logger)

	result, err := uc.Update(args[0], updateDoc)
	if err != nil {
		return fail(err)
	}

	out := cmd.OutOrStdout()
	rel := repoCtx.Rel(result.DocPath)
	switch result.Action {
	case domain.ActionCreated:
		fmt.Fprintf(out, "%s created stub documentation at %s\n", SuccessStyle.Render("✓"), rel)
		fmt.Fprintf(out, "  rename to %s when ready to finalize\n", CmdStyle.Render(usecase.FinalName(result.DocPath)))
	case domain.ActionUnchanged:
		fmt.Fprintf(out, "%s %s already up to date\n", SuccessStyle.Render("✓"), rel)
	default:
		fmt.Fprintf(out, "%s updated %s (%d items)\n", SuccessStyle.Render("✓"), rel, result.Items)
	}
	return nil
}
