// Package config holds the search configuration: alphabet, scoring, mode,
// parallelism and engine. It loads from YAML and builds the objects the
// search runs with.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/seqmatch-go/internal/alignment"
	"github.com/aria-lang/seqmatch-go/internal/pipeline"
	"github.com/aria-lang/seqmatch-go/internal/sequence"
	"github.com/aria-lang/seqmatch-go/internal/wfaalign"
)

// Engines.
const (
	EngineDP  = "dp"
	EngineWFA = "wfa"
)

// Config is the configuration surface of a search.
type Config struct {
	Alphabet  string `yaml:"alphabet"`
	Match     int    `yaml:"match"`
	Mismatch  int    `yaml:"mismatch"`
	Unknown   int    `yaml:"unknown"`
	GapOpen   int    `yaml:"gap_open"`
	GapExtend int    `yaml:"gap_extend"`

	Mode      string `yaml:"mode"`
	Trace     bool   `yaml:"trace"`
	Secondary bool   `yaml:"secondary"`
	Strand    string `yaml:"strand"`
	Engine    string `yaml:"engine"`

	Workers int `yaml:"workers"`
	Shards  int `yaml:"shards"`
}

// Default returns the default configuration: DNA, +2/-1, gaps -1/-1, local
// mode, forward strand, dynamic-programming engine, 16 workers.
func Default() *Config {
	p := alignment.DefaultParams()
	return &Config{
		Alphabet:  sequence.DNASymbols,
		Match:     p.Match,
		Mismatch:  p.Mismatch,
		Unknown:   p.Unknown,
		GapOpen:   p.GapOpen,
		GapExtend: p.GapExtend,
		Mode:      alignment.Local.String(),
		Strand:    pipeline.StrandForward.String(),
		Engine:    EngineDP,
		Workers:   16,
		Shards:    1,
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &alignment.ConfigError{Field: "file", Reason: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Params returns the scalar scoring parameters.
func (c *Config) Params() alignment.ScoringParams {
	return alignment.ScoringParams{
		Match:     c.Match,
		Mismatch:  c.Mismatch,
		Unknown:   c.Unknown,
		GapOpen:   c.GapOpen,
		GapExtend: c.GapExtend,
	}
}

// Validate checks every field without building anything.
func (c *Config) Validate() error {
	if _, err := sequence.NewAlphabet(c.Alphabet); err != nil {
		return &alignment.ConfigError{Field: "alphabet", Reason: err.Error()}
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	mode, err := alignment.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if _, err := pipeline.ParseStrand(c.Strand); err != nil {
		return err
	}
	switch strings.ToLower(c.Engine) {
	case EngineDP:
	case EngineWFA:
		if c.Secondary {
			return &alignment.ConfigError{Field: "secondary", Reason: "not supported by the wfa engine"}
		}
	default:
		return &alignment.ConfigError{Field: "engine", Reason: fmt.Sprintf("unknown engine %q", c.Engine)}
	}
	if c.Secondary && mode != alignment.Local {
		return &alignment.ConfigError{Field: "secondary", Reason: "only defined for local alignment"}
	}
	if c.Workers < 1 {
		return &alignment.ConfigError{Field: "workers", Reason: fmt.Sprintf("must be at least 1, got %d", c.Workers)}
	}
	if c.Shards < 1 {
		return &alignment.ConfigError{Field: "shards", Reason: fmt.Sprintf("must be at least 1, got %d", c.Shards)}
	}
	return nil
}

// Model builds the scoring model.
func (c *Config) Model() (*alignment.ScoringModel, error) {
	alpha, err := sequence.NewAlphabet(c.Alphabet)
	if err != nil {
		return nil, &alignment.ConfigError{Field: "alphabet", Reason: err.Error()}
	}
	return alignment.NewScoringModel(alpha, c.Params())
}

// Aligner builds the configured engine over model.
func (c *Config) Aligner(model *alignment.ScoringModel) (alignment.Aligner, error) {
	mode, err := alignment.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(c.Engine) {
	case EngineWFA:
		return wfaalign.New(model, wfaalign.Options{Mode: mode, Trace: c.Trace}), nil
	case EngineDP, "":
		return alignment.NewKernel(model, alignment.Options{
			Mode:      mode,
			Trace:     c.Trace,
			Secondary: c.Secondary && mode == alignment.Local,
		}), nil
	default:
		return nil, &alignment.ConfigError{Field: "engine", Reason: fmt.Sprintf("unknown engine %q", c.Engine)}
	}
}

// Pipeline validates the configuration and builds the pipeline settings.
func (c *Config) Pipeline(logger logrus.FieldLogger) (pipeline.Config, error) {
	if err := c.Validate(); err != nil {
		return pipeline.Config{}, err
	}
	model, err := c.Model()
	if err != nil {
		return pipeline.Config{}, err
	}
	aligner, err := c.Aligner(model)
	if err != nil {
		return pipeline.Config{}, err
	}
	strand, err := pipeline.ParseStrand(c.Strand)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Model:   model,
		Aligner: aligner,
		Workers: c.Workers,
		Shards:  c.Shards,
		Strand:  strand,
		Logger:  logger,
	}, nil
}

// String returns the configuration as YAML.
func (c *Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("%+v", *c)
	}
	return string(out)
}
