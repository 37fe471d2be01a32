// Command seqmatch-server provides a REST API for alignment and best-match
// search.
//
// Usage:
//
//	seqmatch-server [options]
//
// Options:
//
//	--port     Port to listen on (default: 8080)
//	--host     Host to bind to (default: localhost)
//	--config   YAML configuration file
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aria-lang/seqmatch-go/api/handlers"
	"github.com/aria-lang/seqmatch-go/api/middleware"
	"github.com/aria-lang/seqmatch-go/internal/config"
	"github.com/aria-lang/seqmatch-go/pkg/seqmatch"
)

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>seqmatch API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>seqmatch API</h1>
    <p>Pairwise alignment and best-match search.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/local</code>
        <p>Local alignment (Smith-Waterman) of a query against a reference.</p>
        <pre>{"sequence1": "ACGT", "sequence2": "TTACGTTT"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/global</code>
        <p>Global alignment (Needleman-Wunsch).</p>
        <pre>{"sequence1": "AAAA", "sequence2": "AAAT"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/score</code>
        <p>Local and global scores without a trace.</p>
        <pre>{"sequence1": "AAAA", "sequence2": "AAAT"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/search/best-match</code>
        <p>Best-scoring reference of every query.</p>
        <pre>{"queries": [{"id": "q1", "sequence": "AAAA"}],
 "references": [{"id": "r1", "sequence": "AAAT"}, {"id": "r2", "sequence": "AAAA"}],
 "mode": "global", "trace": true}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/sequence/stats</code>
        <p>Length and composition statistics of a sequence set.</p>
        <pre>{"fasta": ">a\nACGT\n>b\nAA\n"}</pre>
    </div>
</body>
</html>`

func newRouter(cfg *config.Config, logger log.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", handlers.New(cfg, logger).Routes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})
	return r
}

func serve(host string, port int, configFile string) error {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, log.StandardLogger()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("could not shut down gracefully")
		}
		close(done)
	}()

	log.WithFields(log.Fields{
		"addr":    addr,
		"mode":    cfg.Mode,
		"engine":  cfg.Engine,
		"workers": cfg.Workers,
	}).Infof("seqmatch API server %s starting", seqmatch.Version())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	<-done
	log.Info("server stopped")
	return nil
}

func main() {
	var (
		host       string
		port       int
		configFile string
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:          "seqmatch-server",
		Short:        "REST API for alignment and best-match search",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			return serve(host, port, configFile)
		},
	}
	rootCmd.Flags().StringVar(&host, "host", "localhost", "Host to bind to")
	rootCmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-query search results")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
