package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/aria-lang/seqmatch-go/internal/bestmatch"
	"github.com/aria-lang/seqmatch-go/internal/config"
	"github.com/aria-lang/seqmatch-go/internal/pipeline"
	"github.com/aria-lang/seqmatch-go/internal/seqio"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/aria-lang/seqmatch-go/internal/stats"
)

type searchOptions struct {
	queries    string
	references string
	configFile string
	output     string
	progress   bool

	mode      string
	workers   int
	shards    int
	trace     bool
	secondary bool
	strand    string
	engine    string
}

func searchCommand() *cobra.Command {
	var opt searchOptions
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the best reference of every query",
		Long: `Align every query against every reference and print one TSV line
per query with its best-scoring reference.

Columns: query, reference, score, score2, strand, qbegin, qend, rbegin,
rend, cigar. Coordinates are 0-based and inclusive. Queries without a
match print * for the reference and NA for numeric columns.

Settings from --config are used as defaults; flags given on the command
line override them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Flags(), opt)
		},
	}
	cmd.Flags().StringVarP(&opt.queries, "queries", "q", "", "Query FASTA/FASTQ file (gzip allowed)")
	cmd.Flags().StringVarP(&opt.references, "references", "r", "", "Reference FASTA/FASTQ file (gzip allowed)")
	cmd.Flags().StringVar(&opt.configFile, "config", "", "YAML configuration file")
	cmd.Flags().StringVarP(&opt.output, "out", "o", "-", `Output TSV file ("-" for stdout)`)
	cmd.Flags().BoolVar(&opt.progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().StringVar(&opt.mode, "mode", def.Mode, "Alignment mode: local or global")
	cmd.Flags().IntVarP(&opt.workers, "workers", "j", def.Workers, "Number of worker goroutines")
	cmd.Flags().IntVar(&opt.shards, "shards", def.Shards, "Reference shards per query")
	cmd.Flags().BoolVar(&opt.trace, "trace", def.Trace, "Report CIGAR traces")
	cmd.Flags().BoolVar(&opt.secondary, "secondary", def.Secondary, "Report the secondary local score")
	cmd.Flags().StringVar(&opt.strand, "strand", def.Strand, "Query strands: forward or both")
	cmd.Flags().StringVar(&opt.engine, "engine", def.Engine, "Alignment engine: dp or wfa")
	cmd.MarkFlagRequired("queries")
	cmd.MarkFlagRequired("references")
	return cmd
}

// searchConfig loads the configuration file, if any, and applies the flags
// the user set explicitly.
func searchConfig(flags *pflag.FlagSet, opt searchOptions) (*config.Config, error) {
	cfg := config.Default()
	if opt.configFile != "" {
		var err error
		if cfg, err = config.Load(opt.configFile); err != nil {
			return nil, err
		}
	}
	if flags.Changed("mode") {
		cfg.Mode = opt.mode
	}
	if flags.Changed("workers") {
		cfg.Workers = opt.workers
	}
	if flags.Changed("shards") {
		cfg.Shards = opt.shards
	}
	if flags.Changed("trace") {
		cfg.Trace = opt.trace
	}
	if flags.Changed("secondary") {
		cfg.Secondary = opt.secondary
	}
	if flags.Changed("strand") {
		cfg.Strand = opt.strand
	}
	if flags.Changed("engine") {
		cfg.Engine = opt.engine
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSearch(flags *pflag.FlagSet, opt searchOptions) error {
	cfg, err := searchConfig(flags, opt)
	if err != nil {
		return err
	}
	pc, err := cfg.Pipeline(log.StandardLogger())
	if err != nil {
		return err
	}

	queries, err := loadSequences("queries", opt.queries, pc.Model.Alphabet())
	if err != nil {
		return err
	}
	refs, err := loadSequences("references", opt.references, pc.Model.Alphabet())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if opt.progress {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(queries)),
			mpb.PrependDecorators(
				decor.Name("searched queries: ", decor.WC{W: len("searched queries: "), C: decor.DindentRight}),
				decor.Name("", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 1024),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
	}

	records := make([]bestmatch.Record, 0, len(queries))
	last := time.Now()
	err = pipeline.Run(ctx, pc, queries, refs, func(r bestmatch.Record) error {
		records = append(records, r)
		if bar != nil {
			now := time.Now()
			bar.EwmaIncrBy(1, now.Sub(last))
			last = now
		}
		return nil
	})
	if pbs != nil {
		if err != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].QueryIndex < records[j].QueryIndex })
	if err := writeResults(opt.output, records); err != nil {
		return err
	}

	summary := stats.FromRecords(records)
	if summary.NoReference > 0 {
		log.Warnf("%s of %s queries have no reference", humanize.Comma(int64(summary.NoReference)),
			humanize.Comma(int64(summary.Queries)))
	}
	return nil
}

func loadSequences(what, path string, alpha *sequence.Alphabet) ([]*sequence.Sequence, error) {
	seqs, err := seqio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", what, err)
	}
	if len(seqs) == 0 {
		log.Warnf("no %s in %s", what, path)
		return seqs, nil
	}
	s, err := stats.FromSequences(seqs, alpha)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"file":    path,
		"count":   humanize.Comma(int64(s.Count)),
		"bases":   humanize.Comma(int64(s.TotalBases)),
		"min":     s.MinLength,
		"max":     s.MaxLength,
		"n50":     s.N50,
		"empty":   s.Empty,
		"unknown": humanize.Comma(int64(s.Unknown)),
	}).Infof("loaded %s", what)
	return seqs, nil
}

func writeResults(path string, records []bestmatch.Record) error {
	if path == "" || path == "-" {
		return flushTSV(os.Stdout, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := flushTSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

func flushTSV(w io.Writer, records []bestmatch.Record) error {
	bw := bufio.NewWriter(w)
	if err := writeTSV(bw, records); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
