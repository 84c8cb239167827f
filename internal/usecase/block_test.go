package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feat/internal/domain"
)

func alphaItems(fx *fixture) []domain.Item {
	return []domain.Item{
		{Kind: domain.KindFunction, Name: "go", Path: fx.path("src/alpha/a.rs"), Line: 3, Language: domain.LangRust},
	}
}

const alphaBlock = "<!-- feat:alpha -->\n" +
	"\n" +
	"_Generated by feat. Edits inside this block are overwritten._\n" +
	"\n" +
	"* `src/alpha/a.rs`\n" +
	"  - fn go (line 3)\n" +
	"\n" +
	"<!-- /feat:alpha -->\n"

func TestRender(t *testing.T) {
	fx := newFixture(t)
	s := fx.synchronizer()
	f := domain.Feature{Name: "alpha"}

	assert.Equal(t, alphaBlock, s.Render(f, alphaItems(fx)))
}

func TestRenderOrdersFilesAndLines(t *testing.T) {
	fx := newFixture(t)
	s := fx.synchronizer()

	items := []domain.Item{
		{Kind: domain.KindMacro, Name: "hello!", Path: fx.path("src/x/z.rs"), Line: 9},
		{Kind: domain.KindReExport, Name: domain.ReExportName, Extra: "crate::a::B", Path: fx.path("src/x/z.rs"), Line: 2},
		{Kind: domain.KindStruct, Name: "A", Path: fx.path("src/x/a.rs"), Line: 1},
	}

	want := "<!-- feat:x -->\n" +
		"\n" +
		"_Generated by feat. Edits inside this block are overwritten._\n" +
		"\n" +
		"* `src/x/a.rs`\n" +
		"  - struct A (line 1)\n" +
		"* `src/x/z.rs`\n" +
		"  - pub use crate::a::B (line 2)\n" +
		"  - macro hello! (line 9)\n" +
		"\n" +
		"<!-- /feat:x -->\n"

	assert.Equal(t, want, s.Render(domain.Feature{Name: "X"}, items))
}

func TestRenderEmpty(t *testing.T) {
	fx := newFixture(t)
	got := fx.synchronizer().Render(domain.Feature{Name: "empty"}, nil)
	assert.Equal(t, "<!-- feat:empty -->\n\n_Generated by feat. Edits inside this block are overwritten._\n\n<!-- /feat:empty -->\n", got)
}

func TestSyncAppends(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		want     string
	}{
		{"empty document", "", alphaBlock},
		{"whitespace only", "\n\n  \n", alphaBlock},
		{"prose with trailing blank lines", "# Alpha\n\nProse.\n\n\n", "# Alpha\n\nProse.\n\n" + alphaBlock},
		{"only start marker", "intro\n<!-- feat:alpha -->\n", "intro\n<!-- feat:alpha -->\n\n" + alphaBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.write("docs/features/FEATURES_ALPHA.md", tt.existing)

			plan, err := fx.synchronizer().Sync(domain.Feature{Name: "alpha"}, alphaItems(fx), fx.path("docs/features/FEATURES_ALPHA.md"))
			require.NoError(t, err)
			assert.Equal(t, domain.ActionAppended, plan.Action)
			assert.Equal(t, tt.want, fx.read("docs/features/FEATURES_ALPHA.md"))
		})
	}
}

func TestSyncReplacesOnlyTheSpan(t *testing.T) {
	fx := newFixture(t)
	doc := "# Title\n\nbefore\n<!-- feat:alpha -->\nstale entry\n<!-- /feat:alpha -->\nafter\n"
	fx.write("docs/FEATURES_ALPHA.md", doc)

	plan, err := fx.synchronizer().Sync(domain.Feature{Name: "alpha"}, alphaItems(fx), fx.path("docs/FEATURES_ALPHA.md"))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionReplaced, plan.Action)

	want := "# Title\n\nbefore\n" + strings.TrimSuffix(alphaBlock, "\n") + "\nafter\n"
	assert.Equal(t, want, fx.read("docs/FEATURES_ALPHA.md"))
}

func TestSyncIsIdempotent(t *testing.T) {
	fx := newFixture(t)
	fx.write("docs/FEATURES_ALPHA.md", "# Alpha\n\nHand-written prose.\n")
	s := fx.synchronizer()
	f := domain.Feature{Name: "alpha"}
	doc := fx.path("docs/FEATURES_ALPHA.md")

	first, err := s.Sync(f, alphaItems(fx), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionAppended, first.Action)
	after := fx.read("docs/FEATURES_ALPHA.md")

	second, err := s.Sync(f, alphaItems(fx), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionUnchanged, second.Action)
	assert.Equal(t, after, fx.read("docs/FEATURES_ALPHA.md"))
	assert.Len(t, fx.writer.writes, 1)
}

func TestSyncLeavesOtherBlocksAlone(t *testing.T) {
	fx := newFixture(t)
	betaBlock := "<!-- feat:beta -->\nbeta content kept verbatim\n<!-- /feat:beta -->"
	fx.write("docs/SHARED.md", betaBlock+"\n\n<!-- feat:alpha -->\nold\n<!-- /feat:alpha -->\n")

	_, err := fx.synchronizer().Sync(domain.Feature{Name: "Alpha"}, alphaItems(fx), fx.path("docs/SHARED.md"))
	require.NoError(t, err)

	got := fx.read("docs/SHARED.md")
	assert.True(t, strings.HasPrefix(got, betaBlock+"\n\n"))
	assert.Contains(t, got, "  - fn go (line 3)\n")
	assert.NotContains(t, got, "old")
}

func TestSyncFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "duplicate start markers",
			content: "<!-- feat:alpha -->\n<!-- /feat:alpha -->\n<!-- feat:alpha -->\n",
			wantErr: ErrDuplicateBlock,
		},
		{
			name:    "duplicate pairs",
			content: "<!-- feat:alpha -->\n<!-- /feat:alpha -->\n<!-- feat:alpha -->\n<!-- /feat:alpha -->\n",
			wantErr: ErrDuplicateBlock,
		},
		{
			name:    "end before start",
			content: "<!-- /feat:alpha -->\ntext\n<!-- feat:alpha -->\n",
			wantErr: ErrMalformedBlock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.write("docs/A.md", tt.content)

			_, err := fx.synchronizer().Sync(domain.Feature{Name: "alpha"}, alphaItems(fx), fx.path("docs/A.md"))
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.content, fx.read("docs/A.md"))
			assert.Empty(t, fx.writer.writes)
		})
	}
}

func TestSyncMissingDoc(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.synchronizer().Sync(domain.Feature{Name: "alpha"}, nil, fx.path("docs/nope.md"))
	assert.True(t, errors.Is(err, ErrDocNotFound))
}

func TestCreateStub(t *testing.T) {
	fx := newFixture(t)
	stub := fx.path("docs/features/FEATURES_ALPHA.stub.md")

	plan, err := fx.synchronizer().CreateStub(domain.Feature{Name: "alpha"}, stub, alphaItems(fx))
	require.NoError(t, err)
	assert.Equal(t, domain.ActionCreated, plan.Action)

	want := "# Alpha Feature\n" +
		"\n" +
		"> **Note**: This is a stub generated by feat. Rename it to `FEATURES_ALPHA.md` when ready to finalize.\n" +
		"\n" +
		"## Overview\n" +
		"\n" +
		"TODO: Describe the purpose and scope of this feature.\n" +
		"\n" +
		"## Usage\n" +
		"\n" +
		"TODO: Provide usage examples.\n" +
		"\n" +
		"## API Surface\n" +
		"\n" +
		alphaBlock
	assert.Equal(t, want, fx.read("docs/features/FEATURES_ALPHA.stub.md"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "My Feat", Title("my_feat"))
	assert.Equal(t, "Alpha", Title("alpha"))
	assert.Equal(t, "Http Api", Title("HTTP_api"))
}

func TestDigestStable(t *testing.T) {
	assert.Equal(t, Digest(alphaBlock), Digest(alphaBlock))
	assert.Len(t, Digest(alphaBlock), 64)
	assert.NotEqual(t, Digest(alphaBlock), Digest(alphaBlock+"x"))
}
