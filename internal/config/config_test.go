package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/pipeline"
	"github.com/aria-lang/seqmatch-go/internal/wfaalign"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "ACGTN", c.Alphabet)
	assert.Equal(t, alignment.DefaultParams(), c.Params())
	assert.Equal(t, "local", c.Mode)
	assert.Equal(t, 16, c.Workers)

	model, err := c.Model()
	require.NoError(t, err)
	assert.Equal(t, 6, model.Size())

	aligner, err := c.Aligner(model)
	require.NoError(t, err)
	k, ok := aligner.(*alignment.Kernel)
	require.True(t, ok)
	assert.Equal(t, alignment.Local, k.Options().Mode)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
alphabet: ACGU
match: 5
mismatch: -4
gap_open: -10
gap_extend: -1
mode: global
trace: true
strand: both
workers: 4
shards: 2
`))
	require.NoError(t, err)

	assert.Equal(t, "ACGU", c.Alphabet)
	assert.Equal(t, 5, c.Match)
	assert.Equal(t, -1, c.Unknown) // default kept
	assert.Equal(t, "global", c.Mode)
	assert.True(t, c.Trace)

	pc, err := c.Pipeline(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, pc.Workers)
	assert.Equal(t, 2, pc.Shards)
	assert.Equal(t, pipeline.StrandBoth, pc.Strand)
	assert.Equal(t, "ACGU", pc.Model.Alphabet().Symbols())
	assert.Equal(t, -10, pc.Model.GapOpen())
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: blue"},
		{"bad yaml", "match: [1"},
		{"positive mismatch", "mismatch: 1"},
		{"zero match", "match: 0"},
		{"non-negative gap", "gap_open: 0"},
		{"duplicate symbol", "alphabet: ACGA"},
		{"empty alphabet", `alphabet: ""`},
		{"bad mode", "mode: semiglobal"},
		{"bad strand", "strand: up"},
		{"bad engine", "engine: gpu"},
		{"no workers", "workers: 0"},
		{"no shards", "shards: 0"},
		{"secondary in global mode", "mode: global\nsecondary: true"},
		{"secondary with wfa", "engine: wfa\nsecondary: true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, alignment.ErrConfiguration)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: wfa\nmode: global\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	model, err := c.Model()
	require.NoError(t, err)
	aligner, err := c.Aligner(model)
	require.NoError(t, err)
	_, ok := aligner.(*wfaalign.Aligner)
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	c := Default()
	round, err := Parse([]byte(c.String()))
	require.NoError(t, err)
	assert.Equal(t, c, round)
}
