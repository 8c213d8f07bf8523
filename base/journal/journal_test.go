package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/random/base/random"
)

func TestJournal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "journal.db")
	j, err := Open(path)
	require.NoError(t, err)

	saved, err := j.Save("pair", "abc", 123)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "123"}, saved.Seeds)

	_, err = j.Save("plain", "test")
	require.NoError(t, err)
	_, err = j.Save("other", "x")
	require.NoError(t, err)

	_, err = j.Save(" ", "x")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = j.Save("empty")
	assert.ErrorIs(t, err, random.ErrNoSeeds)

	e, err := j.Get("pair")
	require.NoError(t, err)
	assert.Equal(t, saved.Name, e.Name)
	assert.Equal(t, saved.Seeds, e.Seeds)
	assert.True(t, saved.Created.Equal(e.Created))

	// Replaying an entry reproduces the stream.
	g, err := e.Generator()
	require.NoError(t, err)
	f, err := g.Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.6509925271384418, f, 0)

	entries, err := j.List("")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "other", entries[0].Name)
	assert.Equal(t, "pair", entries[1].Name)
	assert.Equal(t, "plain", entries[2].Name)

	entries, err = j.List("p")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, j.Delete("pair"))
	_, err = j.Get("pair")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, j.Delete("pair"), ErrNotFound)

	// Entries survive reopening.
	require.NoError(t, j.Close())
	j, err = Open(path)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, j.Close())
	}()

	e, err = j.Get("plain")
	require.NoError(t, err)
	g, err = e.Generator()
	require.NoError(t, err)
	f, err = g.Fraction()
	require.NoError(t, err)
	assert.InDelta(t, 0.5442283214069903, f, 0)
}

func TestJournalNameWhitespace(t *testing.T) {
	t.Parallel()

	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, j.Close())
	}()

	saved, err := j.Save(" run1 ", "a")
	require.NoError(t, err)
	assert.Equal(t, "run1", saved.Name)

	e, err := j.Get(" run1 ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, e.Seeds)
	_, err = j.Get("run1")
	require.NoError(t, err)

	require.NoError(t, j.Delete(" run1 "))
	_, err = j.Get("run1")
	assert.ErrorIs(t, err, ErrNotFound)
}
