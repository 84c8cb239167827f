package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feat/internal/domain"
)

func TestScanConfiguredFeature(t *testing.T) {
	fx := newFixture(t)
	fx.write("src/alpha/a.rs", "pub fn go() {}\n#[macro_export]\nmacro_rules! hi { () => {} }\n")

	coll, err := NewScanUseCase(fx.resolver(), fx.collector()).Scan("alpha", nil)
	require.NoError(t, err)
	require.Len(t, coll.Items, 2)
	assert.Equal(t, domain.KindMacro, coll.Items[1].Kind)
	assert.Equal(t, "hi!", coll.Items[1].Name)

	_, err = NewScanUseCase(fx.resolver(), fx.collector()).Scan("omega", nil)
	assert.True(t, errors.Is(err, ErrUnknownFeature))
}

func TestScanAdHocPaths(t *testing.T) {
	fx := newFixture(t)
	fx.cfg.Languages = []string{"python"}
	fx.write("tools/gen.py", "def run():\n    pass\n\ndef _skip():\n    pass\n")

	coll, err := NewScanUseCase(fx.resolver(), fx.collector()).Scan("tools", []string{"./tools/"})
	require.NoError(t, err)

	assert.Equal(t, []string{"tools"}, coll.Feature.Paths)
	assert.Equal(t, domain.LangPython, coll.Language)
	require.Len(t, coll.Items, 1)
	assert.Equal(t, "run", coll.Items[0].Name)
}
