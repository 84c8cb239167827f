package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

)

var renderPretty bool

var renderCmd = &cobra.Command{
	Use:   "render <feature>",
	Short: "Print the generated block for a feature",
	Long: `Print the block that update would write for a feature, without touching
any document. --pretty renders it as markdown for the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderPretty, "pretty", false, "render as styled markdown")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	p := newPipeline()

	f, err := p.resolver.Lookup(args[0])
	if err != nil {
		return fail(err)
	}
	coll := p.collector.CollectItems(f)
	block := p.sync.Render(f, coll.Items)

	out := cmd.OutOrStdout()
	if !renderPretty {
		fmt.Fprint(out, block)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fail(fmt.Errorf("failed to create renderer: %w", err))
	}
	pretty, err := renderer.Render(block)
	if err != nil {
		return fail(fmt.Errorf("failed to render markdown: %w", err))
	}
	fmt.Fprint(out, pretty)
	return nil
}
