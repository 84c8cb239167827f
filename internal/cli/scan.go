package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"feat/internal/domain"
	"feat/internal/usecase"
)

var (
	scanFormat string
	scanPaths  []string
)

var scanCmd = &cobra.Command{
	Use:   "scan <feature>",
	Short: "Show the public API surface of a feature",
	Long: `Scan the source files of a feature and print the public items found.

With --path the feature is built from the given paths instead of the
configuration, which is useful to inspect a directory before mapping it.

Examples:
  feat scan alpha
  feat scan alpha --format json
  feat scan tools --path scripts/tools`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "output format: text, json or yaml")
	scanCmd.Flags().StringSliceVar(&scanPaths, "path", nil, "scan these paths instead of the configured feature (repeatable)")
	rootCmd.AddCommand(scanCmd)
}

// scanRecord is the serialized form of one item.
type scanRecord struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Name     string  `json:"name" yaml:"name"`
	Location string  `json:"location" yaml:"location"`
	Line     int     `json:"line" yaml:"line"`
	Extra    *string `json:"extra" yaml:"extra"`
	Language string  `json:"language" yaml:"language"`
}

// categories orders the text output sections.
var categories = []struct {
	kind  domain.ItemKind
	title string
}{
	{domain.KindFunction, "Functions"},
	{domain.KindAsyncFunction, "Async Functions"},
	{domain.KindStruct, "Structs"},
	{domain.KindEnum, "Enums"},
	{domain.KindTrait, "Traits"},
	{domain.KindTypeAlias, "Type Aliases"},
	{domain.KindReExport, "Re-exports"},
	{domain.KindMacro, "Exported Macros"},
	{domain.KindClass, "Classes"},
}

func runScan(cmd *cobra.Command, args []string) error {
	switch scanFormat {
	case "text", "json", "yaml":
	default:
		return fail(fmt.Errorf("unknown format %q (want text, json or yaml)", scanFormat))
	}

	p := newPipeline()
	uc := usecase.NewScanUseCase(p.resolver, p.collector)

	coll, err := uc.Scan(args[0], scanPaths)
	if err != nil {
		return fail(err)
	}

	out := cmd.OutOrStdout()
	if len(coll.Items) == 0 {
		fmt.Fprintf(out, "no public items found for feature '%s'\n", args[0])
		return nil
	}

	switch scanFormat {
	case "json":
		return writeJSON(out, toRecords(coll.Items))
	case "yaml":
		return writeYAML(out, toRecords(coll.Items))
	default:
		writeScanText(out, coll)
		return nil
	}
}

func toRecords(items []domain.Item) []scanRecord {
	records := make([]scanRecord, 0, len(items))
	for _, it := range items {
		rec := scanRecord{
			Kind:     string(it.Kind),
			Name:     it.Name,
			Location: it.RelPath(repoCtx.Root),
			Line:     it.Line,
			Language: string(it.Language),
		}
		if it.Extra != "" {
			extra := it.Extra
			rec.Extra = &extra
		}
		records = append(records, rec)
	}
	return records
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func writeScanText(w io.Writer, coll *usecase.Collection) {
	fmt.Fprintln(w, TitleStyle.Render("== "+strings.ToUpper(coll.Feature.Name)+" =="))
	fmt.Fprintf(w, "paths: %s\n", strings.Join(coll.Feature.Paths, ", "))

	grouped := make(map[domain.ItemKind][]domain.Item)
	for _, it := range coll.Items {
		grouped[it.Kind] = append(grouped[it.Kind], it)
	}

	for _, c := range categories {
		bucket := grouped[c.kind]
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", SubtitleStyle.Render(c.title+":"))
		for _, it := range bucket {
			line := fmt.Sprintf("- %s (%s:%d)", it.Name, it.RelPath(repoCtx.Root), it.Line)
			if it.Extra != "" {
				line += " [" + it.Extra + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}
