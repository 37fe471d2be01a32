package alignment

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringModel(t *testing.T) {
	t.Run("DefaultDNA", func(t *testing.T) {
		m := DefaultDNA()
		assert.Equal(t, 2, m.Params().Match)
		assert.Equal(t, -1, m.Params().Mismatch)
		assert.Equal(t, -1, m.GapOpen())
		assert.Equal(t, -1, m.GapExtend())
		assert.Equal(t, 6, m.Size())
		assert.Equal(t, 2, m.MaxAbs())
	})

	t.Run("Score match", func(t *testing.T) {
		m := DefaultDNA()
		a := m.Alphabet()
		assert.Equal(t, 2, m.Score(a.Code('A'), a.Code('A')))
	})

	t.Run("Score mismatch", func(t *testing.T) {
		m := DefaultDNA()
		a := m.Alphabet()
		assert.Equal(t, -1, m.Score(a.Code('A'), a.Code('T')))
	})

	t.Run("Score unknown", func(t *testing.T) {
		params := DefaultParams()
		params.Unknown = -3
		m, err := NewScoringModel(sequence.DNA(), params)
		require.NoError(t, err)

		u := m.Alphabet().Unknown()
		assert.Equal(t, -3, m.Score(u, u))
		assert.Equal(t, -3, m.Score(0, u))
		assert.Equal(t, -3, m.Score(250, 0))
	})

	t.Run("GapCost", func(t *testing.T) {
		params := DefaultParams()
		params.GapOpen, params.GapExtend = -5, -2
		m, err := NewScoringModel(sequence.DNA(), params)
		require.NoError(t, err)

		assert.Equal(t, 0, m.GapCost(0))
		assert.Equal(t, -5, m.GapCost(1))
		assert.Equal(t, -9, m.GapCost(3))
	})

	t.Run("Invalid scoring parameters", func(t *testing.T) {
		bad := []ScoringParams{
			{Match: 0, Mismatch: -1, Unknown: -1, GapOpen: -1, GapExtend: -1},
			{Match: 2, Mismatch: 1, Unknown: -1, GapOpen: -1, GapExtend: -1},
			{Match: 2, Mismatch: -1, Unknown: 1, GapOpen: -1, GapExtend: -1},
			{Match: 2, Mismatch: -1, Unknown: -1, GapOpen: 0, GapExtend: -1},
			{Match: 2, Mismatch: -1, Unknown: -1, GapOpen: -1, GapExtend: 0},
		}
		for _, p := range bad {
			_, err := NewScoringModel(sequence.DNA(), p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "%+v", p)

			var cerr *ConfigError
			assert.True(t, errors.As(err, &cerr))
		}
	})

	t.Run("Nil alphabet", func(t *testing.T) {
		_, err := NewScoringModel(nil, DefaultParams())
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"local", Local, false},
		{"SW", Local, false},
		{"global", Global, false},
		{"Needleman-Wunsch", Global, false},
		{"semi", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfile(t *testing.T) {
	model := DefaultDNA()
	alpha := model.Alphabet()

	t.Run("Rows", func(t *testing.T) {
		p, err := NewProfile(alpha.Encode("ACGT"), model)
		require.NoError(t, err)
		defer p.Release()

		assert.Equal(t, 4, p.Len())
		assert.Equal(t, []int32{2, -1, -1, -1}, p.Row(alpha.Code('A')))
		assert.Equal(t, []int32{-1, -1, -1, 2}, p.Row(alpha.Code('T')))
		assert.Equal(t, []int32{-1, -1, -1, -1}, p.Row(alpha.Unknown()))
		assert.Equal(t, []int32{-1, -1, -1, -1}, p.Row(200))
	})

	t.Run("Empty query", func(t *testing.T) {
		_, err := NewProfile(nil, model)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Nil model", func(t *testing.T) {
		_, err := NewProfile(alpha.Encode("A"), nil)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("Release", func(t *testing.T) {
		p, err := NewProfile(alpha.Encode("ACGT"), model)
		require.NoError(t, err)

		p.Release()
		assert.NotPanics(t, p.Release)
		assert.Panics(t, func() { p.Row(0) })
	})
}

func TestCigar(t *testing.T) {
	t.Run("Add merges runs", func(t *testing.T) {
		var c Cigar
		c.Add(OpMatch, 2)
		c.Add(OpMatch, 1)
		c.Add(OpInsertion, 1)
		c.Add(OpDeletion, 0)
		c.Add(OpMatch, 4)
		assert.Equal(t, "3M1I4M", c.String())
		assert.Equal(t, 8, c.QueryLen())
		assert.Equal(t, 7, c.RefLen())
	})

	t.Run("ParseCigar", func(t *testing.T) {
		c, err := ParseCigar("10M2D3M1I")
		require.NoError(t, err)
		assert.Equal(t, Cigar{{OpMatch, 10}, {OpDeletion, 2}, {OpMatch, 3}, {OpInsertion, 1}}, c)
		assert.Equal(t, "10M2D3M1I", c.String())
	})

	t.Run("ParseCigar errors", func(t *testing.T) {
		for _, s := range []string{"M", "3M4", "3S", "0M"} {
			_, err := ParseCigar(s)
			assert.Error(t, err, s)
		}
	})

	t.Run("Render", func(t *testing.T) {
		c, err := ParseCigar("2M1D2M1I")
		require.NoError(t, err)

		q, r, err := c.Render("xACGTT", "ACTGTy", 1, 0)
		require.NoError(t, err)
		assert.Equal(t, "AC-GTT", q)
		assert.Equal(t, "ACTGT-", r)
	})

	t.Run("Render out of range", func(t *testing.T) {
		c, err := ParseCigar("5M")
		require.NoError(t, err)

		_, _, err = c.Render("ACGT", "ACGTA", 0, 0)
		assert.Error(t, err)
	})
}

func align(t *testing.T, mode Mode, trace bool, query, ref string) *Result {
	t.Helper()
	model := DefaultDNA()
	alpha := model.Alphabet()

	p, err := NewProfile(alpha.Encode(query), model)
	require.NoError(t, err)
	defer p.Release()

	res, err := NewKernel(model, Options{Mode: mode, Trace: trace, Secondary: mode == Local}).
		Align(p, alpha.Encode(ref))
	require.NoError(t, err)
	return res
}

func TestKernelLocal(t *testing.T) {
	tests := []struct {
		name       string
		query, ref string
		score      int
		qBeg, qEnd int
		rBeg, rEnd int
		cigar      string
	}{
		{"embedded", "ACGT", "TTACGTTT", 8, 0, 3, 2, 5, "4M"},
		{"identical", "ACGTACGT", "ACGTACGT", 16, 0, 7, 0, 7, "8M"},
		{"single base", "A", "A", 2, 0, 0, 0, 0, "1M"},
		{"deletion", "AAAACCCC", "AAAAGCCCC", 15, 0, 7, 0, 8, "4M1D4M"},
		{"insertion", "AAAAGCCCC", "AAAACCCC", 15, 0, 8, 0, 7, "4M1I4M"},
		{"no match", "AAAA", "TTTT", 0, -1, -1, -1, -1, ""},
		{"earliest of equal maxima", "AC", "ACAC", 4, 0, 1, 0, 1, "2M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := align(t, Local, true, tt.query, tt.ref)

			assert.Equal(t, Local, res.Mode)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, tt.qBeg, res.QueryBegin)
			assert.Equal(t, tt.qEnd, res.QueryEnd)
			assert.Equal(t, tt.rBeg, res.RefBegin)
			assert.Equal(t, tt.rEnd, res.RefEnd)
			assert.True(t, res.HasTrace())
			assert.Equal(t, tt.cigar, res.Cigar.String())
			assert.Equal(t, tt.score == 0, res.Empty())
		})
	}
}

func TestKernelGlobal(t *testing.T) {
	tests := []struct {
		name       string
		query, ref string
		score      int
		cigar      string
	}{
		{"identical", "ACGTACGT", "ACGTACGT", 16, "8M"},
		{"one mismatch", "AAAA", "AAAT", 5, "4M"},
		{"completely different", "AAAA", "TTTT", -4, "4M"},
		{"single base", "A", "T", -1, "1M"},
		{"gap in query", "AAAACCCC", "AAAAGCCCC", 15, "4M1D4M"},
		{"gap in reference", "AAAAGCCCC", "AAAACCCC", 15, "4M1I4M"},
		{"trailing gap", "ACGT", "ACGTTTT", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := align(t, Global, true, tt.query, tt.ref)

			assert.Equal(t, Global, res.Mode)
			assert.Equal(t, tt.score, res.Score)
			assert.Equal(t, 0, res.QueryBegin)
			assert.Equal(t, len(tt.query)-1, res.QueryEnd)
			assert.Equal(t, 0, res.RefBegin)
			assert.Equal(t, len(tt.ref)-1, res.RefEnd)
			assert.False(t, res.HasSecondary)
			assert.Equal(t, len(tt.query), res.Cigar.QueryLen())
			assert.Equal(t, len(tt.ref), res.Cigar.RefLen())
			if tt.cigar != "" {
				assert.Equal(t, tt.cigar, res.Cigar.String())
			}
		})
	}
}

func TestKernelUnknownSymbols(t *testing.T) {
	// X is outside the DNA alphabet and scores as unknown even against itself
	res := align(t, Global, false, "AXA", "AXA")
	assert.Equal(t, 3, res.Score)
}

func TestKernelSecondary(t *testing.T) {
	query := "ACGTACGT"
	ref := query + strings.Repeat("T", 20) + "ACGTAC"

	res := align(t, Local, false, query, ref)
	assert.Equal(t, 16, res.Score)
	assert.Equal(t, 7, res.RefEnd)
	require.True(t, res.HasSecondary)
	assert.Equal(t, 12, res.Score2)
	assert.Equal(t, len(ref)-1, res.RefEnd2)

	t.Run("none outside the mask", func(t *testing.T) {
		res := align(t, Local, false, "ACGT", "ACGTACGT")
		require.True(t, res.HasSecondary)
		assert.Equal(t, 0, res.Score2)
		assert.Equal(t, -1, res.RefEnd2)
	})
}

func TestKernelErrors(t *testing.T) {
	model := DefaultDNA()
	alpha := model.Alphabet()
	k := NewKernel(model, Options{Mode: Local})

	t.Run("Empty reference", func(t *testing.T) {
		p, err := NewProfile(alpha.Encode("ACGT"), model)
		require.NoError(t, err)
		defer p.Release()

		_, err = k.Align(p, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.True(t, IsPairError(err))
	})

	t.Run("Nil profile", func(t *testing.T) {
		_, err := k.Align(nil, alpha.Encode("ACGT"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Overflow", func(t *testing.T) {
		big, err := NewScoringModel(sequence.DNA(), ScoringParams{
			Match: 1 << 20, Mismatch: -1, Unknown: -1, GapOpen: -1, GapExtend: -1,
		})
		require.NoError(t, err)

		seq := alpha.Encode(strings.Repeat("A", 300))
		p, err := NewProfile(seq, big)
		require.NoError(t, err)
		defer p.Release()

		_, err = NewKernel(big, Options{Mode: Global}).Align(p, seq)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOverflow)
		assert.True(t, IsPairError(err))

		var oerr *OverflowError
		require.True(t, errors.As(err, &oerr))
		assert.Equal(t, 300, oerr.QueryLen)
	})

	t.Run("Trace too large", func(t *testing.T) {
		query := alpha.Encode(strings.Repeat("A", 20000))
		ref := alpha.Encode(strings.Repeat("C", 15000))
		require.Greater(t, int64(len(query)+1)*int64(len(ref)+1), int64(MaxTraceCells))

		p, err := NewProfile(query, model)
		require.NoError(t, err)
		defer p.Release()

		for _, mode := range []Mode{Local, Global} {
			_, err = NewKernel(model, Options{Mode: mode, Trace: true}).Align(p, ref)
			require.Error(t, err, mode.String())
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.True(t, IsPairError(err))
			assert.Contains(t, err.Error(), "limit")
		}
	})

	t.Run("Configuration is not a pair error", func(t *testing.T) {
		assert.False(t, IsPairError(&ConfigError{Field: "match", Reason: "bad"}))
	})
}

func randomBases(rng *rand.Rand, n int) string {
	const bases = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = bases[rng.Intn(len(bases))]
	}
	return string(b)
}

// rescore recomputes the score of a traced alignment under model.
func rescore(model *ScoringModel, res *Result, query, ref sequence.Encoded) int {
	score := 0
	i, j := res.QueryBegin, res.RefBegin
	for _, op := range res.Cigar {
		switch op.Op {
		case OpMatch:
			for k := 0; k < op.Len; k++ {
				score += model.Score(query[i], ref[j])
				i++
				j++
			}
		case OpInsertion:
			score += model.GapCost(op.Len)
			i += op.Len
		case OpDeletion:
			score += model.GapCost(op.Len)
			j += op.Len
		}
	}
	return score
}

func TestKernelProperties(t *testing.T) {
	model := DefaultDNA()
	alpha := model.Alphabet()
	rng := rand.New(rand.NewSource(7))

	for n := 0; n < 200; n++ {
		q := randomBases(rng, 1+rng.Intn(40))
		r := randomBases(rng, 1+rng.Intn(60))

		for _, mode := range []Mode{Local, Global} {
			plain := align(t, mode, false, q, r)
			traced := align(t, mode, true, q, r)
			swapped := align(t, mode, false, r, q)

			require.Equal(t, plain.Score, traced.Score, "%s %s %s", mode, q, r)
			require.Equal(t, plain.QueryBegin, traced.QueryBegin, "%s %s %s", mode, q, r)
			require.Equal(t, plain.QueryEnd, traced.QueryEnd, "%s %s %s", mode, q, r)
			require.Equal(t, plain.RefBegin, traced.RefBegin, "%s %s %s", mode, q, r)
			require.Equal(t, plain.RefEnd, traced.RefEnd, "%s %s %s", mode, q, r)
			require.Equal(t, plain.Score, swapped.Score, "symmetry %s %s %s", mode, q, r)

			require.Equal(t, traced.Score, rescore(model, traced, alpha.Encode(q), alpha.Encode(r)),
				"%s %s %s %s", mode, q, r, traced.Cigar)

			if traced.Empty() {
				require.Equal(t, 0, traced.Score)
				continue
			}
			require.Equal(t, traced.QueryEnd-traced.QueryBegin+1, traced.Cigar.QueryLen())
			require.Equal(t, traced.RefEnd-traced.RefBegin+1, traced.Cigar.RefLen())

			aq, ar, err := traced.Cigar.Render(q, r, traced.QueryBegin, traced.RefBegin)
			require.NoError(t, err)
			require.Equal(t, len(aq), len(ar))
			require.Equal(t, q[traced.QueryBegin:traced.QueryEnd+1], strings.ReplaceAll(aq, "-", ""))
			require.Equal(t, r[traced.RefBegin:traced.RefEnd+1], strings.ReplaceAll(ar, "-", ""))
		}

		local := align(t, Local, false, q, r)
		global := align(t, Global, false, q, r)
		require.GreaterOrEqual(t, local.Score, 0)
		require.GreaterOrEqual(t, local.Score, global.Score)
	}

	t.Run("Self alignment", func(t *testing.T) {
		for n := 1; n <= 50; n += 7 {
			s := randomBases(rng, n)
			res := align(t, Global, false, s, s)
			assert.Equal(t, n*model.Params().Match, res.Score)
		}
	})
}

func TestKernelConcurrent(t *testing.T) {
	model := DefaultDNA()
	alpha := model.Alphabet()
	k := NewKernel(model, Options{Mode: Local, Trace: true})

	p, err := NewProfile(alpha.Encode("ACGTACGTAC"), model)
	require.NoError(t, err)
	defer p.Release()

	refs := []string{"TTACGTACGTACTT", "ACGT", "GGGGGGGGGG", "ACGTTCGTAC"}
	want := make([]int, len(refs))
	for i, r := range refs {
		res, err := k.Align(p, alpha.Encode(r))
		require.NoError(t, err)
		want[i] = res.Score
	}

	errs := make(chan error, 64)
	for g := 0; g < 8; g++ {
		go func() {
			for n := 0; n < 8; n++ {
				i := n % len(refs)
				res, err := k.Align(p, alpha.Encode(refs[i]))
				if err == nil && res.Score != want[i] {
					err = errors.New("score changed under concurrency")
				}
				errs <- err
			}
		}()
	}
	for n := 0; n < 64; n++ {
		require.NoError(t, <-errs)
	}
}

func TestSmithWaterman(t *testing.T) {
	tests := []struct {
		name     string
		seq1     string
		seq2     string
		minScore int
	}{
		{
			name:     "identical short",
			seq1:     "ATGC",
			seq2:     "ATGC",
			minScore: 8, // 4 matches * 2
		},
		{
			name:     "one mismatch",
			seq1:     "ATGC",
			seq2:     "ATGA",
			minScore: 6, // 3 matches
		},
		{
			name:     "with gap",
			seq1:     "ATGCATGC",
			seq2:     "ATGATGC",
			minScore: 8,
		},
		{
			name:     "no match",
			seq1:     "AAAA",
			seq2:     "TTTT",
			minScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq1, err := sequence.New(tt.seq1)
			require.NoError(t, err)

			seq2, err := sequence.New(tt.seq2)
			require.NoError(t, err)

			alignment, err := SmithWaterman(seq1, seq2, nil)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, alignment.Score, tt.minScore)
			assert.Equal(t, len(alignment.AlignedQuery), len(alignment.AlignedRef))
		})
	}
}

func TestSmithWatermanIdentical(t *testing.T) {
	seq1, _ := sequence.New("ACGT")
	seq2, _ := sequence.New("ACGT")

	alignment, err := SmithWaterman(seq1, seq2, nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, alignment.Identity)
	assert.Equal(t, 4, alignment.MatchCount())
	assert.Equal(t, 0, alignment.MismatchCount())
	assert.Equal(t, 0, alignment.TotalGaps())
	assert.Equal(t, "4=", alignment.ExtendedCIGAR())
	assert.Contains(t, alignment.Format(), "||||")
}

func TestSmithWatermanGap(t *testing.T) {
	seq1, _ := sequence.New("AAAACCCC")
	seq2, _ := sequence.New("AAAAGCCCC")

	alignment, err := SmithWaterman(seq1, seq2, nil)
	require.NoError(t, err)

	assert.Equal(t, "AAAA-CCCC", alignment.AlignedQuery)
	assert.Equal(t, "AAAAGCCCC", alignment.AlignedRef)
	assert.Equal(t, 1, alignment.GapsQuery())
	assert.Equal(t, 0, alignment.GapsRef())
	assert.Equal(t, 1, alignment.GapOpenings())
	assert.Equal(t, "4=1D4=", alignment.ExtendedCIGAR())
	assert.InDelta(t, 8.0/9.0, alignment.Identity, 0.0001)
}

func TestSmithWatermanNoMatch(t *testing.T) {
	seq1, _ := sequence.New("AAAA")
	seq2, _ := sequence.New("TTTT")

	alignment, err := SmithWaterman(seq1, seq2, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, alignment.Score)
	assert.Equal(t, 0, alignment.Length())
	assert.Equal(t, 0.0, alignment.Identity)
	assert.Equal(t, "", alignment.ExtendedCIGAR())
}

func TestNeedlemanWunsch(t *testing.T) {
	tests := []struct {
		name     string
		seq1     string
		seq2     string
		cigarExt string
	}{
		{
			name:     "identical",
			seq1:     "ATGC",
			seq2:     "ATGC",
			cigarExt: "4=",
		},
		{
			name:     "different length",
			seq1:     "ATGCATGC",
			seq2:     "ATGC",
			cigarExt: "",
		},
		{
			name:     "completely different",
			seq1:     "AAAA",
			seq2:     "TTTT",
			cigarExt: "4X",
		},
		{
			name:     "one mismatch",
			seq1:     "AAAA",
			seq2:     "AAAT",
			cigarExt: "3=1X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq1, err := sequence.New(tt.seq1)
			require.NoError(t, err)

			seq2, err := sequence.New(tt.seq2)
			require.NoError(t, err)

			alignment, err := NeedlemanWunsch(seq1, seq2, nil)
			require.NoError(t, err)

			// Global alignment should always produce same-length alignments
			assert.Equal(t, len(alignment.AlignedQuery), len(alignment.AlignedRef))

			// Alignment length should be at least the max of input lengths
			maxLen := max(seq1.Len(), seq2.Len())
			assert.GreaterOrEqual(t, alignment.Length(), maxLen)

			if tt.cigarExt != "" {
				assert.Equal(t, tt.cigarExt, alignment.ExtendedCIGAR())
			}
		})
	}
}

func TestNewAlignedWithoutTrace(t *testing.T) {
	res := align(t, Local, false, "ACGT", "ACGT")
	_, err := NewAligned(res, "ACGT", "ACGT")
	assert.Error(t, err)
}

func TestScoreOnly(t *testing.T) {
	seq1, _ := sequence.New("ATGCATGCATGC")
	seq2, _ := sequence.New("ATGCATTCATGC")

	for _, mode := range []Mode{Local, Global} {
		score, err := ScoreOnly(seq1, seq2, nil, mode)
		require.NoError(t, err)

		alignment, err := Pair(seq1, seq2, nil, mode)
		require.NoError(t, err)
		assert.Equal(t, alignment.Score, score, mode.String())
	}
}

func TestPercentIdentity(t *testing.T) {
	tests := []struct {
		name     string
		aligned1 string
		aligned2 string
		want     float64
		wantErr  bool
	}{
		{"perfect", "ATGC", "ATGC", 100.0, false},
		{"50%", "ATGC", "ATTT", 50.0, false},
		{"with gaps", "AT-GC", "ATGGC", 80.0, false},
		{"different lengths", "ATGC", "ATG", 0, true},
		{"empty", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentIdentity(tt.aligned1, tt.aligned2)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func benchmarkPair() (*sequence.Sequence, *sequence.Sequence) {
	s1 := ""
	s2 := ""
	for i := 0; i < 250; i++ {
		s1 += "ACGT"
		s2 += "AGCT"
	}
	seq1, _ := sequence.New(s1)
	seq2, _ := sequence.New(s2)
	return seq1, seq2
}

func BenchmarkSmithWaterman(b *testing.B) {
	seq1, seq2 := benchmarkPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SmithWaterman(seq1, seq2, DefaultDNA())
	}
}

func BenchmarkNeedlemanWunsch(b *testing.B) {
	seq1, seq2 := benchmarkPair()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = NeedlemanWunsch(seq1, seq2, DefaultDNA())
	}
}

func BenchmarkKernelScoreOnly(b *testing.B) {
	seq1, seq2 := benchmarkPair()
	model := DefaultDNA()
	alpha := model.Alphabet()
	p, _ := NewProfile(alpha.EncodeSequence(seq1), model)
	defer p.Release()
	ref := alpha.EncodeSequence(seq2)
	k := NewKernel(model, Options{Mode: Local})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = k.Align(p, ref)
	}
}
