package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/random/base/config"
)

func TestCreateWithSeeds(t *testing.T) {
	t.Parallel()

	_, err := CreateWithSeeds()
	assert.ErrorIs(t, err, ErrNoSeeds)
	assert.EqualError(t, err, "no seeds provided")

	g, err := CreateWithSeeds("test")
	require.NoError(t, err)
	f, err := g.Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)
	assert.False(t, g.Secure())
}

func TestNewInsecure(t *testing.T) {
	t.Parallel()

	g := NewInsecure(StaticSeeds{"test"})
	f, err := g.Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)

	// Ambient seeds differ between calls.
	a := NewInsecure(nil).Source().(*Alea)
	b := NewInsecure(nil).Source().(*Alea)
	assert.NotEqual(t, a.Seeds(), b.Seeds())
}

func TestAmbientSeeds(t *testing.T) {
	t.Parallel()

	seeds := AmbientSeeds.Seeds()
	require.Len(t, seeds, 6)
	assert.Positive(t, seeds[1])
	assert.Positive(t, seeds[2])
	assert.Contains(t, seeds[3], "random/")
}

func TestParseSourcePreference(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]SourcePreference{
		"":         PreferAuto,
		"auto":     PreferAuto,
		" Fortuna": PreferFortuna,
		"OS":       PreferOS,
		"alea":     PreferAlea,
	} {
		pref, err := ParseSourcePreference(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, pref, input)
	}

	_, err := ParseSourcePreference("dice")
	assert.Error(t, err)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	g, err := Select(PreferAuto, nil)
	require.NoError(t, err)
	assert.Equal(t, KindFortuna, g.Kind())
	assert.True(t, g.Secure())

	g, err = Select(PreferOS, nil)
	require.NoError(t, err)
	assert.Equal(t, KindOS, g.Kind())
	assert.True(t, g.Secure())

	g, err = Select(PreferAlea, StaticSeeds{"test"})
	require.NoError(t, err)
	assert.Equal(t, KindAlea, g.Kind())
	assert.False(t, g.Secure())
	f, err := g.Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)

	_, err = Select("dice", nil)
	assert.Error(t, err)
}

func TestCheckSource(t *testing.T) {
	t.Parallel()

	assert.NoError(t, checkSource(OSSource()))
	assert.Error(t, checkSource(NewReaderSource(failingReader{})))
}

func TestDefaultAndModule(t *testing.T) { //nolint:paralleltest // Replaces the default generator.
	defer SetDefault(nil)

	SetDefault(nil)
	g := Default()
	require.NotNil(t, g)
	assert.Same(t, g, Default())

	custom := NewInsecure(StaticSeeds{"custom"})
	SetDefault(custom)
	assert.Same(t, custom, Default())

	// The module selects according to the config.
	require.NoError(t, config.SetConfigOption(CfgOptionSourceKey, string(PreferOS)))
	defer func() {
		_ = config.SetConfigOption(CfgOptionSourceKey, nil)
	}()
	require.NoError(t, testModule.Start())
	assert.Equal(t, KindOS, Default().Kind())

	require.NoError(t, config.SetConfigOption(CfgOptionSourceKey, string(PreferAlea)))
	require.NoError(t, testModule.Start())
	assert.Equal(t, KindAlea, Default().Kind())
	assert.False(t, Default().Secure())

	require.NoError(t, testModule.Stop())
	assert.Error(t, config.SetConfigOption(CfgOptionSourceKey, "dice"))
}

type seededInstance struct{}

func (seededInstance) Seeds() []any { return []any{"test"} }

func (seededInstance) SourcePreference() string { return string(PreferOS) }

func TestModuleWithSeeds(t *testing.T) { //nolint:paralleltest // Replaces the default generator.
	defer SetDefault(nil)

	m := &Random{mgr: testModule.Manager(), instance: seededInstance{}}
	require.NoError(t, m.Start())

	f, err := Default().Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)
}

func TestDrawMetrics(t *testing.T) {
	t.Parallel()

	g, err := CreateWithSeeds("metrics")
	require.NoError(t, err)

	before := Draws(KindAlea)
	for range 10 {
		_, err := g.Fraction()
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, Draws(KindAlea), before+10)
}

func TestDrawMetricsPerRead(t *testing.T) {
	t.Parallel()

	kind := Kind("read-count")
	g := NewGenerator(NewAlea("metrics"), kind, false)

	_, err := g.Bytes(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), Draws(kind))

	_, err = g.Fraction()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), Draws(kind))

	osGen := NewGenerator(OSSource(), Kind("read-count-os"), true)
	_, err = osGen.Bytes(32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), Draws(Kind("read-count-os")))
}
