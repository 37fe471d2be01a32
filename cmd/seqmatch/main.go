// Command seqmatch aligns query sequences against a reference collection and
// reports the best-scoring reference of every query.
//
// Usage:
//
//	seqmatch <command> [options]
//
// Commands:
//
//	search   Find the best reference of every query
//	align    Align two sequences
//	stats    Summarize sequence files
//	version  Show version information
package main

import (
	"fmt"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("seqmatch version %s\n", seqmatch.Version())
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "seqmatch",
		Short: "pairwise alignment and best-match search",
		Long: `seqmatch: pairwise alignment and best-match search

Every query is aligned against every reference with an affine-gap
Smith-Waterman (local) or Needleman-Wunsch (global) kernel, and the
best-scoring reference is reported. Ties go to the smallest reference
identifier, so results do not depend on the number of workers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-query results")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(searchCommand())
	rootCmd.AddCommand(alignCommand())
	rootCmd.AddCommand(statsCommand())
	rootCmd.AddCommand(versionCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
