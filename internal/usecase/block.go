package usecase

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"feat/internal/adapter/fs"
	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

//go:embed templates/*.tmpl
var docTemplates embed.FS

var (
	// ErrDocNotFound is returned when the target document does not exist.
	ErrDocNotFound = errors.New("doc file not found")
	// ErrDuplicateBlock is returned when a document holds more than one
	// start or end marker for the same feature.
	ErrDuplicateBlock = errors.New("duplicate feat block markers")
	// ErrMalformedBlock is returned when the end marker precedes the start.
	ErrMalformedBlock = errors.New("feat block end marker precedes start marker")
)

const blockNotice = "_Generated by feat. Edits inside this block are overwritten._"

// StartMarker opens the generated block of feature.
func StartMarker(f domain.Feature) string {
	return "<!-- feat:" + f.Label() + " -->"
}

// EndMarker closes the generated block of feature.
func EndMarker(f domain.Feature) string {
	return "<!-- /feat:" + f.Label() + " -->"
}

// Plan is the result of applying a block to a document, before writing.
type Plan struct {
	DocPath string
	Action  domain.SyncAction
	Block   string
	Content string
}

// Synchronizer renders feature blocks and splices them into documents.
type Synchronizer struct {
	repo   repo.Context
	reader port.FileReader
	writer port.FileWriter
	logger *log.Logger
}

func NewSynchronizer(rc repo.Context, reader port.FileReader, writer port.FileWriter, logger *log.Logger) *Synchronizer {
	return &Synchronizer{repo: rc, reader: reader, writer: writer, logger: logger}
}

// Render returns the block for items: files in path order, items in line
// order within a file. The text ends with a single newline.
func (s *Synchronizer) Render(f domain.Feature, items []domain.Item) string {
	byFile := make(map[string][]domain.Item)
	for _, it := range items {
		rel := it.RelPath(s.repo.Root)
		byFile[rel] = append(byFile[rel], it)
	}
	files := make([]string, 0, len(byFile))
	for rel := range byFile {
		files = append(files, rel)
	}
	sort.Strings(files)

	var b strings.Builder
	b.WriteString(StartMarker(f))
	b.WriteString("\n\n")
	b.WriteString(blockNotice)
	b.WriteString("\n\n")

	for _, rel := range files {
		entries := byFile[rel]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Line < entries[j].Line
		})
		fmt.Fprintf(&b, "* `%s`\n", rel)
		for _, it := range entries {
			fmt.Fprintf(&b, "  - %s (line %d)\n", it.Describe(), it.Line)
		}
	}
	if len(files) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(EndMarker(f))
	b.WriteString("\n")
	return b.String()
}

// Plan computes the new document content without writing it.
func (s *Synchronizer) Plan(f domain.Feature, items []domain.Item, docPath string) (*Plan, error) {
	if !fs.IsFile(docPath) {
		return nil, fmt.Errorf("%w: %s", ErrDocNotFound, docPath)
	}
	content, err := s.reader.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read doc: %w", err)
	}

	block := s.Render(f, items)
	plan := &Plan{DocPath: docPath, Block: block}

	start, end := StartMarker(f), EndMarker(f)
	startCount := strings.Count(content, start)
	endCount := strings.Count(content, end)

	switch {
	case startCount > 1 || endCount > 1:
		return nil, fmt.Errorf("%w for '%s' in %s", ErrDuplicateBlock, f.Label(), docPath)
	case startCount == 0 || endCount == 0:
		trimmed := strings.TrimRight(content, " \t\r\n")
		if trimmed == "" {
			plan.Content = block
		} else {
			plan.Content = trimmed + "\n\n" + block
		}
		plan.Action = domain.ActionAppended
	default:
		i := strings.Index(content, start)
		j := strings.Index(content, end)
		if j < i {
			return nil, fmt.Errorf("%w for '%s' in %s", ErrMalformedBlock, f.Label(), docPath)
		}
		plan.Content = content[:i] + strings.TrimSuffix(block, "\n") + content[j+len(end):]
		plan.Action = domain.ActionReplaced
	}

	if plan.Content == content {
		plan.Action = domain.ActionUnchanged
	}
	return plan, nil
}

// Sync writes the feature block into docPath and reports what happened.
// An unchanged document is not rewritten.
func (s *Synchronizer) Sync(f domain.Feature, items []domain.Item, docPath string) (*Plan, error) {
	plan, err := s.Plan(f, items, docPath)
	if err != nil {
		return nil, err
	}
	if plan.Action == domain.ActionUnchanged {
		s.logger.Debug("doc already up to date", "feature", f.Name, "path", s.repo.Rel(docPath))
		return plan, nil
	}
	if err := s.writer.WriteFile(docPath, []byte(plan.Content)); err != nil {
		return nil, fmt.Errorf("failed to write doc: %w", err)
	}
	return plan, nil
}

type stubData struct {
	Title     string
	FinalName string
	Block     string
}

// CreateStub writes a new stub document holding the feature block.
func (s *Synchronizer) CreateStub(f domain.Feature, docPath string, items []domain.Item) (*Plan, error) {
	tmplContent, err := docTemplates.ReadFile("templates/stub.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	tmpl, err := template.New("stub").Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	block := s.Render(f, items)
	data := stubData{
		Title:     Title(f.Name),
		FinalName: FinalName(docPath),
		Block:     block,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	content := strings.TrimRight(buf.String(), "\n") + "\n"

	if err := s.writer.WriteFile(docPath, []byte(content)); err != nil {
		return nil, fmt.Errorf("failed to write stub: %w", err)
	}
	return &Plan{DocPath: docPath, Action: domain.ActionCreated, Block: block, Content: content}, nil
}

// Title turns a feature name into a heading, e.g. "my_feat" -> "My Feat".
func Title(name string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

// Digest fingerprints a rendered block for the history log.
func Digest(block string) string {
	sum := sha256.Sum256([]byte(block))
	return hex.EncodeToString(sum[:])
}
