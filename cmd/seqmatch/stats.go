package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/seqmatch-go/internal/seqio"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/aria-lang/seqmatch-go/internal/stats"
)

func statsCommand() *cobra.Command {
	var symbols string
	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Summarize sequence files",
		Long: `Print length and composition statistics of FASTA/FASTQ files.
Symbols outside the alphabet are counted as unknown.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alpha, err := sequence.NewAlphabet(symbols)
			if err != nil {
				return err
			}
			for _, path := range args {
				if err := printStats(path, alpha); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&symbols, "alphabet", "a", sequence.DNASymbols, "Alphabet symbols")
	return cmd
}

func printStats(path string, alpha *sequence.Alphabet) error {
	seqs, err := seqio.ReadFile(path)
	if err != nil {
		return err
	}
	if len(seqs) == 0 {
		fmt.Printf("%s: no sequences\n", path)
		return nil
	}
	s, err := stats.FromSequences(seqs, alpha)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n", path, s)
	return nil
}
