// Package track404 summarizes repeated HTTP error responses in access logs,
// without keeping any identifying detail, so that broken endpoints are easy to
// find.
//
// Each log line containing a request field answered with the target status
// (404 unless configured otherwise) contributes one hit to its path, after the
// path has been sanitized: the query string is dropped and every run of digits
// becomes "<num>". The most frequent paths are then reported:
//
//	t, err := track404.New(track404.Config{
//		MinCount: 5,
//		Status:   404,
//		Sources:  []string{"access.log", "access.log.1.gz"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	results, err := t.Run(context.Background())
//	if err != nil {
//		log.Fatal(err)
//	}
//	track404.Lines(results).Stdout()
//
// Sources are read with pipes, in the manner of shell pipelines. The same
// steps are available piecemeal:
//
//	track404.File("access.log").Requests(404).Sanitize().Stdout()
package track404

import (
	"context"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var validate = validator.New()

// Config controls a run.
type Config struct {
	// MinCount is the number of hits a path needs to be reported.
	MinCount int `validate:"gte=0"`
	// Limit caps the number of paths reported. Zero means no limit.
	Limit int `validate:"gte=0"`
	// Status is the HTTP status code to look for.
	Status int `validate:"gte=100,lte=599"`
	// Sources names the logs to read, in order: file paths, paths ending in
	// ".gz", or "-" for standard input.
	Sources []string `validate:"required,min=1,dive,required"`
	// Parallel reads all sources concurrently. The results are the same.
	Parallel bool
}

// DefaultConfig returns a Config with the default threshold and status, and
// no sources.
func DefaultConfig() Config {
	return Config{
		MinCount: 5,
		Status:   404,
	}
}

// Validate returns a *ConfigError if c is not usable.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

// Tracker runs one aggregation over a configured set of sources.
type Tracker struct {
	cfg       Config
	extractor *Extractor
	log       zerolog.Logger
	stdin     io.Reader
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used to report progress. By default a Tracker
// logs nothing.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) {
		t.log = l
	}
}

// WithStdin sets the stream read for the "-" source, instead of os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(t *Tracker) {
		t.stdin = r
	}
}

// New returns a Tracker for cfg, or a *ConfigError if cfg is invalid.
func New(cfg Config, opts ...Option) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tracker{
		cfg:       cfg,
		extractor: NewExtractor(cfg.Status),
		log:       zerolog.Nop(),
		stdin:     os.Stdin,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Run reads every source to the end, and returns the paths that were hit at
// least MinCount times, most frequent first, limited to Limit entries. If any
// source cannot be read, Run returns a *SourceError naming it, and no results.
func (t *Tracker) Run(ctx context.Context) ([]Entry, error) {
	counter := NewCounter()
	var err error
	if t.cfg.Parallel {
		err = t.consumeParallel(ctx, counter)
	} else {
		err = t.consume(ctx, counter)
	}
	if err != nil {
		return nil, err
	}
	t.log.Debug().
		Int("paths", counter.Len()).
		Int("hits", counter.Total()).
		Msg("aggregated")
	return Select(counter.Snapshot(), t.cfg.MinCount, t.cfg.Limit), nil
}

func (t *Tracker) consume(ctx context.Context, counter *Counter) error {
	for _, name := range t.cfg.Sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.consumeSource(ctx, name, t.stdin, counter); err != nil {
			return err
		}
	}
	return nil
}

// consumeParallel reads each source into its own counter, and merges them
// once all sources are done. Standard input is read only by the first "-"
// source; any later ones see it already exhausted, as they would when reading
// in order.
func (t *Tracker) consumeParallel(ctx context.Context, counter *Counter) error {
	g, ctx := errgroup.WithContext(ctx)
	locals := make([]*Counter, len(t.cfg.Sources))
	stdin := t.stdin
	for i, name := range t.cfg.Sources {
		i, name := i, name
		locals[i] = NewCounter()
		in := stdin
		if KindOf(name) == SourceStdin {
			stdin = eof{}
		}
		g.Go(func() error {
			return t.consumeSource(ctx, name, in, locals[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, local := range locals {
		counter.Merge(local)
	}
	return nil
}

// consumeSource reads the named source into counter. stdin is the stream read
// for "-".
func (t *Tracker) consumeSource(ctx context.Context, name string, stdin io.Reader, counter *Counter) error {
	kind := KindOf(name)
	var p *Pipe
	if kind == SourceStdin {
		p = Reader(stdin)
	} else {
		p = Open(name)
	}
	tally, err := p.record(ctx, counter, t.extractor)
	if err != nil {
		t.log.Debug().Err(err).Str("source", name).Msg("source failed")
		return err
	}
	t.log.Debug().
		Str("source", name).
		Stringer("kind", kind).
		Int("lines", tally.Lines).
		Int("matched", tally.Matched).
		Msg("source read")
	return nil
}

// eof is an input stream that has already been read to the end.
type eof struct{}

func (eof) Read([]byte) (int, error) {
	return 0, io.EOF
}
