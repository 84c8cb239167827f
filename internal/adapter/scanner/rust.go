package scanner

import (
	"regexp"
	"strings"

	"feat/internal/domain"
)

var (
	rustPubFn     = regexp.MustCompile(`^\s*pub\s+(?:async\s+)?fn\s+([A-Za-z0-9_]+)`)
	rustPubStruct = regexp.MustCompile(`^\s*pub\s+struct\s+([A-Za-z0-9_]+)`)
	rustPubEnum   = regexp.MustCompile(`^\s*pub\s+enum\s+([A-Za-z0-9_]+)`)
	rustPubTrait  = regexp.MustCompile(`^\s*pub\s+trait\s+([A-Za-z0-9_]+)`)
	rustPubType   = regexp.MustCompile(`^\s*pub\s+type\s+([A-Za-z0-9_]+)`)
	rustPubUse    = regexp.MustCompile(`^\s*pub\s+use\s+(.+);\s*$`)
	rustMacro     = regexp.MustCompile(`^\s*macro_rules!\s+([A-Za-z0-9_]+)`)
)

const rustMacroExport = "#[macro_export]"

// rustPattern pairs an item kind with the expression that recognizes it.
type rustPattern struct {
	kind domain.ItemKind
	re   *regexp.Regexp
}

var rustPatterns = []rustPattern{
	{domain.KindFunction, rustPubFn},
	{domain.KindStruct, rustPubStruct},
	{domain.KindEnum, rustPubEnum},
	{domain.KindTrait, rustPubTrait},
	{domain.KindTypeAlias, rustPubType},
	{domain.KindReExport, rustPubUse},
}

// exportState tracks whether a #[macro_export] line is waiting for the
// macro_rules! definition it annotates.
type exportState int

const (
	exportIdle exportState = iota
	exportArmed
)

// RustScanner finds pub items and exported macro_rules! macros.
type RustScanner struct{}

func NewRustScanner() *RustScanner {
	return &RustScanner{}
}

func (s *RustScanner) Language() domain.Language { return domain.LangRust }

func (s *RustScanner) Extensions() []string { return []string{".rs"} }

// Scan walks the file once. An export annotation arms the state; while
// armed, blank and attribute-only lines are skipped, a macro_rules! line
// emits the macro and any other line disarms without emitting.
func (s *RustScanner) Scan(path, content string) ([]domain.Item, error) {
	var items []domain.Item
	state := exportIdle

	for i, line := range splitLines(content) {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, rustMacroExport) {
			state = exportArmed
			continue
		}

		if item, ok := matchRustItem(path, line, lineNum); ok {
			items = append(items, item)
			state = exportIdle
			continue
		}

		if state != exportArmed {
			continue
		}

		if m := rustMacro.FindStringSubmatch(line); m != nil {
			items = append(items, domain.Item{
				Kind:     domain.KindMacro,
				Name:     m[1] + "!",
				Path:     path,
				Line:     lineNum,
				Language: domain.LangRust,
			})
			state = exportIdle
			continue
		}

		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			state = exportIdle
		}
	}

	return items, nil
}

func matchRustItem(path, line string, lineNum int) (domain.Item, bool) {
	for _, p := range rustPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := domain.Item{
			Kind:     p.kind,
			Name:     strings.TrimSpace(m[1]),
			Path:     path,
			Line:     lineNum,
			Language: domain.LangRust,
		}
		if p.kind == domain.KindReExport {
			item.Extra = item.Name
			item.Name = domain.ReExportName
		}
		return item, true
	}
	return domain.Item{}, false
}
