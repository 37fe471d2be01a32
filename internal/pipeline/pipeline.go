package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/bestmatch"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/aria-lang/seqmatch-go/internal/stats"
)

// Strand selects which query strands are searched.
type Strand int

const (
	// StrandForward searches the query as given.
	StrandForward Strand = iota
	// StrandBoth also searches the reverse complement of the query.
	StrandBoth
)

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "forward"
	case StrandBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseStrand parses "forward" or "both".
func ParseStrand(s string) (Strand, error) {
	switch strings.ToLower(s) {
	case "", "forward", "+":
		return StrandForward, nil
	case "both":
		return StrandBoth, nil
	default:
		return 0, &alignment.ConfigError{Field: "strand", Reason: fmt.Sprintf("unknown strand %q", s)}
	}
}

// Config controls the search pipeline.
type Config struct {
	Model   *alignment.ScoringModel // defaults to alignment.DefaultDNA()
	Aligner alignment.Aligner       // defaults to a local Kernel over Model
	Workers int                     // number of worker goroutines (>=1)
	Shards  int                     // reference shards per query (>=1)
	Strand  Strand                  // query strands searched
	Logger  logrus.FieldLogger      // defaults to logrus.StandardLogger()
}

// query is one query strand set, shared read-only by its tasks.
type query struct {
	index    int
	id       string
	parts    int
	profiles []*alignment.Profile
}

func (q *query) release() {
	for _, p := range q.profiles {
		p.Release()
	}
}

type task struct {
	q       *query
	profile *alignment.Profile
	strand  string
	refs    []bestmatch.Reference
}

type partial struct {
	q   *query
	rec bestmatch.Record
	err error
}

// Run searches every query against refs and calls visit once per query with
// its best-match record, from a single goroutine, as soon as all of the
// query's shards are done. Records arrive in completion order.
//
// Run returns the first error from visit or from the aligner. When ctx is
// cancelled no further work is started, in-flight tasks finish, and Run
// returns ctx.Err(); only completed queries have been visited.
func Run(
	ctx context.Context,
	cfg Config,
	queries []*sequence.Sequence,
	refs []*sequence.Sequence,
	visit func(bestmatch.Record) error,
) error {
	cfg = cfg.withDefaults()
	log := cfg.Logger
	alpha := cfg.Model.Alphabet()

	encoded := make([]bestmatch.Reference, len(refs))
	for i, r := range refs {
		encoded[i] = bestmatch.Reference{ID: r.ID, Index: i, Seq: alpha.EncodeSequence(r)}
	}
	shards := split(encoded, cfg.Shards)

	log.WithFields(logrus.Fields{
		"queries":    humanize.Comma(int64(len(queries))),
		"references": humanize.Comma(int64(len(refs))),
		"workers":    cfg.Workers,
		"shards":     len(shards),
		"strand":     cfg.Strand,
	}).Info("search started")
	if len(refs) == 0 {
		log.Warn("reference collection is empty; every query will have no match")
	}
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan task, cfg.Workers*2)
	results := make(chan partial, cfg.Workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-tasks:
					if !ok {
						return
					}
					rec, err := bestmatch.Reduce(cfg.Aligner, t.profile, t.refs)
					if rec.Found {
						rec.Strand = t.strand
					}
					select {
					case results <- partial{q: t.q, rec: rec, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr    error
		cwg     sync.WaitGroup
		summary stats.ResultSummary
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		type pending struct {
			rec       bestmatch.Record
			remaining int
		}
		open := make(map[int]*pending)
		for p := range results {
			if cerr != nil {
				continue
			}
			if p.err != nil {
				cerr = fmt.Errorf("query %s: %w", p.q.id, p.err)
				cancel()
				continue
			}

			st, ok := open[p.q.index]
			if !ok {
				st = &pending{remaining: p.q.parts}
				open[p.q.index] = st
			}
			st.rec = bestmatch.Merge(st.rec, p.rec)
			st.remaining--
			if st.remaining > 0 {
				continue
			}

			delete(open, p.q.index)
			p.q.release()

			rec := st.rec
			rec.QueryID, rec.QueryIndex = p.q.id, p.q.index
			summary.Add(rec)
			logRecord(log, rec)

			if err := visit(rec); err != nil {
				cerr = err
				cancel()
			}
		}
	}()

	// Feed work
	var built []*query
	defer func() {
		for _, q := range built {
			q.release()
		}
	}()

feed:
	for i, s := range queries {
		q, strands, err := prepare(i, s, cfg, len(shards))
		if err != nil {
			// the query cannot be profiled; every reference is skipped
			log.WithField("query", s.ID).WithError(err).Warn("query skipped")
			q = &query{index: i, id: s.ID, parts: 1}
			select {
			case <-ctx.Done():
				break feed
			case results <- partial{q: q, rec: bestmatch.Record{Skipped: len(refs)}}:
			}
			continue
		}
		built = append(built, q)

		for k, p := range q.profiles {
			for _, shard := range shards {
				select {
				case <-ctx.Done():
					break feed
				case tasks <- task{q: q, profile: p, strand: strands[k], refs: shard}:
				}
			}
		}
	}

	close(tasks)
	wg.Wait()
	close(results)
	cwg.Wait()

	log.WithFields(logrus.Fields{
		"queries": humanize.Comma(int64(summary.Queries)),
		"matched": humanize.Comma(int64(summary.Matched)),
		"missing": summary.NoReference,
		"reverse": summary.Reverse,
		"pairs":   humanize.Comma(int64(summary.EvaluatedPairs)),
		"skipped": summary.SkippedPairs,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("search finished")

	if cerr != nil {
		return cerr
	}
	return ctx.Err()
}

// prepare builds the profiles of one query, one per searched strand.
func prepare(index int, s *sequence.Sequence, cfg Config, shards int) (*query, []string, error) {
	alpha := cfg.Model.Alphabet()
	q := &query{index: index, id: s.ID}

	fwd, err := alignment.NewProfile(alpha.EncodeSequence(s), cfg.Model)
	if err != nil {
		return nil, nil, err
	}
	q.profiles = append(q.profiles, fwd)
	strands := []string{bestmatch.Forward}

	if cfg.Strand == StrandBoth {
		rev, err := alignment.NewProfile(alpha.EncodeSequence(s.ReverseComplement()), cfg.Model)
		if err != nil {
			fwd.Release()
			return nil, nil, err
		}
		q.profiles = append(q.profiles, rev)
		strands = append(strands, bestmatch.Reverse)
	}

	q.parts = len(q.profiles) * shards
	return q, strands, nil
}

func logRecord(log logrus.FieldLogger, rec bestmatch.Record) {
	entry := log.WithFields(logrus.Fields{
		"query":     rec.QueryID,
		"evaluated": rec.Evaluated,
		"skipped":   rec.Skipped,
	})
	if !rec.Found {
		entry.Debug("no reference found")
		return
	}
	entry.WithFields(logrus.Fields{
		"reference": rec.ReferenceID,
		"strand":    rec.Strand,
		"score":     rec.Result.Score,
	}).Debug("best match")
}

// split cuts refs into at most n contiguous shards of near-equal size. An
// empty collection is one empty shard so that every query still yields a
// record.
func split(refs []bestmatch.Reference, n int) [][]bestmatch.Reference {
	if n > len(refs) {
		n = len(refs)
	}
	if n < 1 {
		return [][]bestmatch.Reference{refs}
	}
	shards := make([][]bestmatch.Reference, 0, n)
	size, rem := len(refs)/n, len(refs)%n
	lo := 0
	for i := 0; i < n; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		shards = append(shards, refs[lo:hi])
		lo = hi
	}
	return shards
}

// Collect runs the search and returns the records ordered by query index.
func Collect(ctx context.Context, cfg Config, queries, refs []*sequence.Sequence) ([]bestmatch.Record, error) {
	records := make([]bestmatch.Record, 0, len(queries))
	err := Run(ctx, cfg, queries, refs, func(rec bestmatch.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].QueryIndex < records[j].QueryIndex
	})
	return records, nil
}

func (c Config) withDefaults() Config {
	if c.Model == nil {
		c.Model = alignment.DefaultDNA()
	}
	if c.Aligner == nil {
		c.Aligner = alignment.NewKernel(c.Model, alignment.Options{Mode: alignment.Local})
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Shards < 1 {
		c.Shards = 1
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}
	return c
}
