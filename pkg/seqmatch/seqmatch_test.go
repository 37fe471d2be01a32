package seqmatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	seq1, err := NewSequence("ACGT")
	require.NoError(t, err)
	seq2, err := NewSequence("TTACGTTT")
	require.NoError(t, err)

	a, err := Align(seq1, seq2)
	require.NoError(t, err)
	assert.Equal(t, 8, a.Score)
	assert.Equal(t, 2, a.RefBegin)
	assert.Equal(t, "4M", a.Cigar.String())

	g, err := AlignGlobal(seq1, seq1)
	require.NoError(t, err)
	assert.Equal(t, 8, g.Score)

	score, err := Score(seq1, seq2, nil, Global)
	require.NoError(t, err)
	assert.Equal(t, 4, score) // 4 matches, gaps of 2 and 2
}

func TestSearch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "global"
	cfg.Workers = 4

	queries := []*Sequence{{ID: "q", Bases: "AAAA"}}
	refs := []*Sequence{{ID: "r2", Bases: "AAAT"}, {ID: "r1", Bases: "AAAA"}}

	records, err := Search(context.Background(), cfg, queries, refs)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ReferenceID)
	assert.Equal(t, 8, records[0].Score())

	s := Summarize(records)
	assert.Equal(t, 1, s.Matched)

	empty, err := Search(context.Background(), cfg, queries, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, empty[0].Err(), ErrNoReferences)
}

func TestSearchInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mismatch = 3
	_, err := Search(context.Background(), cfg, nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestRank(t *testing.T) {
	query := &Sequence{ID: "q", Bases: "ATGCATGC"}
	refs := []*Sequence{
		{ID: "t1", Bases: "GCTAGCTA"},
		{ID: "t2", Bases: "ATGCATGC"},
		{ID: "t3", Bases: "AAAAAAAA"},
	}

	records, err := Rank(DefaultConfig(), query, refs)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "t2", records[0].ReferenceID)
	assert.Equal(t, "q", records[0].QueryID)
}

func TestFASTARoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.fa")
	in := []*Sequence{{ID: "a", Bases: "ACGT"}, {ID: "b", Bases: "GGCC"}}
	require.NoError(t, WriteFASTA(path, in))

	out, err := ReadSequences(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "GGCC", out[1].Bases)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	parsed, err := ParseFASTA(f)
	require.NoError(t, err)
	assert.Equal(t, in, parsed)
}
