package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"feat/internal/adapter/markdown"
	"feat/internal/usecase"
)

var checkMissingDocs bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration, feature paths and docs",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkMissingDocs, "missing-docs", false, "also report features without docs, stubs and placeholder prose")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p := newPipeline()
	uc := usecase.NewCheckUseCase(repoCtx, cfg, p.registry, p.resolver, p.locator, markdown.NewOutliner(), p.reader, logger)

	report, err := uc.Check(checkMissingDocs)
	if err != nil {
		return fail(err)
	}

	out := cmd.OutOrStdout()

	if len(report.ConfigErrors) > 0 {
		fmt.Fprintln(out, ErrorStyle.Render("Configuration errors:"))
		for _, e := range report.ConfigErrors {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		return fail(fmt.Errorf("%d configuration error(s)", len(report.ConfigErrors)))
	}

	for _, m := range report.MissingPaths {
		fmt.Fprintf(out, "%s path not found for '%s': %s\n", ErrorStyle.Render("error:"), m.Feature, repoCtx.Rel(m.Path))
	}

	if checkMissingDocs {
		for _, name := range report.MissingDocs {
			fmt.Fprintf(out, "%s no doc file for '%s'\n", WarningStyle.Render("warning:"), name)
		}
		for _, s := range report.Stubs {
			fmt.Fprintf(out, "stub: %s has stub documentation at %s\n", s.Feature, repoCtx.Rel(s.Path))
		}
		for _, d := range report.Placeholders {
			fmt.Fprintf(out, "todo: %s (%s) still has placeholder sections: %s\n", d.Feature, repoCtx.Rel(d.Path), strings.Join(d.Sections, ", "))
		}
		if len(report.Stubs) > 0 || len(report.MissingDocs) > 0 {
			fmt.Fprintf(out, "\nDocumentation status: %d stub(s), %d missing\n", len(report.Stubs), len(report.MissingDocs))
		}
	}

	if issues := report.Issues(); issues > 0 {
		fmt.Fprintf(out, "\n%d issue(s) found\n", issues)
		return fail(fmt.Errorf("check found %d issue(s)", issues))
	}

	fmt.Fprintf(out, "%s configuration OK\n", SuccessStyle.Render("✓"))
	return nil
}
