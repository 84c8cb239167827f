package domain

import (
	"path/filepath"
	"strings"
	"time"
)

type Language string

const (
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
)

// ItemKind is the wire tag of an extracted item. The values are used
// verbatim in rendered blocks and in JSON output.
type ItemKind string

const (
	KindFunction      ItemKind = "fn"
	KindAsyncFunction ItemKind = "async_fn"
	KindStruct        ItemKind = "struct"
	KindEnum          ItemKind = "enum"
	KindTrait         ItemKind = "trait"
	KindTypeAlias     ItemKind = "type"
	KindReExport      ItemKind = "use"
	KindMacro         ItemKind = "macro"
	KindClass         ItemKind = "class"
)

// ReExportName is the display name shared by all re-export items.
const ReExportName = "pub use"

type Item struct {
	Kind     ItemKind
	Name     string
	Path     string
	Line     int
	Extra    string
	Language Language
}

// RelPath returns the item's file relative to root using forward slashes.
// Paths outside root are returned unchanged.
func (it Item) RelPath(root string) string {
	return RelSlash(root, it.Path)
}

// Describe returns the block entry text, e.g. "fn go" or "pub use a::b".
func (it Item) Describe() string {
	switch {
	case it.Kind == KindReExport && it.Extra != "":
		return "pub use " + it.Extra
	case it.Kind == KindMacro:
		return "macro " + it.Name
	default:
		return string(it.Kind) + " " + it.Name
	}
}

type Feature struct {
	Name     string
	Paths    []string
	DocPath  string
	Language Language
}

// Label is the case-normalized name embedded in document markers.
func (f Feature) Label() string {
	return strings.ToLower(f.Name)
}

type SyncAction string

const (
	ActionCreated   SyncAction = "created"
	ActionAppended  SyncAction = "appended"
	ActionReplaced  SyncAction = "replaced"
	ActionUnchanged SyncAction = "unchanged"
	ActionFailed    SyncAction = "failed"
)

type SyncRecord struct {
	RunID   string     `json:"run_id"`
	Feature string     `json:"feature"`
	DocPath string     `json:"doc_path"`
	Action  SyncAction `json:"action"`
	Items   int        `json:"items"`
	Digest  string     `json:"digest,omitempty"`
	Error   string     `json:"error,omitempty"`
	At      time.Time  `json:"at"`
}

// RelSlash returns path relative to root with forward slashes, or path
// itself when it cannot be expressed relative to root.
func RelSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
