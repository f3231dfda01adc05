// ============================================================================
// taletekst - Danish TTS text corpus builder
// ============================================================================
//
// Package:     dataset
// Description: Orchestration of source building, interleaving and covering
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package dataset wires sources, the interleaver and the phoneme covering
// selector into the two corpus pipelines.
package dataset

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msto63/taletekst/internal/fetch"
	"github.com/msto63/taletekst/internal/interleave"
	"github.com/msto63/taletekst/internal/sentence"
	"github.com/msto63/taletekst/internal/source"
	"github.com/msto63/taletekst/internal/textio"
	"github.com/msto63/taletekst/pkg/core/config"
	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/logging"
)

// Pipeline builds the corpus described by a configuration
type Pipeline struct {
	cfg       *config.Config
	registry  *source.Registry
	fetcher   source.PageFetcher
	extractor *sentence.Extractor
	logger    *logging.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRegistry replaces the source registry
func WithRegistry(r *source.Registry) Option {
	return func(p *Pipeline) { p.registry = r }
}

// WithFetcher replaces the page fetcher
func WithFetcher(f source.PageFetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a pipeline. The Punkt model is loaded when configured.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logging.Discard()
	}
	p.logger = p.logger.Named("dataset")

	if p.registry == nil {
		p.registry = source.NewRegistry()
	}
	if p.fetcher == nil {
		p.fetcher = fetch.NewClient(fetch.Config{
			Retries:   cfg.Scraping.Retries,
			RetryWait: cfg.Scraping.RetryWait.Duration,
			Timeout:   cfg.Scraping.Timeout.Duration,
			UserAgent: cfg.Scraping.UserAgent,
			CacheTTL:  cfg.Scraping.CacheTTL.Duration,
		}, p.logger)
	}

	splitter, err := sentence.NewSplitter(cfg.Sentences.PunktModel)
	if err != nil {
		return nil, err
	}
	p.extractor = sentence.NewExtractor(splitter, cfg.Sentences.MinSentenceLength)

	return p, nil
}

// Extractor returns the configured sentence extractor
func (p *Pipeline) Extractor() *sentence.Extractor {
	return p.extractor
}

// SourceCount describes one collection of a build
type SourceCount struct {
	Name    string
	Kind    string
	Count   int
	Sampled bool
	Weight  float64
}

// Report summarizes a build
type Report struct {
	Sources  []SourceCount
	Written  int
	Output   string
	Duration time.Duration
}

// BuildSources builds the named sources, or every configured source when
// names is empty, with at most Workers builders running at once. Each
// collection is saved to the raw directory. The result is in name order.
func (p *Pipeline) BuildSources(ctx context.Context, names ...string) ([]interleave.Collection, error) {
	if len(names) == 0 {
		names = p.cfg.SourceNames()
	}

	deps := source.Deps{
		Config:    p.cfg,
		Fetcher:   p.fetcher,
		Extractor: p.extractor,
		Logger:    p.logger,
	}

	builders := make([]source.Builder, len(names))
	for i, name := range names {
		sc, ok := p.cfg.Sources[name]
		if !ok {
			return nil, tterr.Newf(tterr.CodeNotFound, "source %q is not configured", name)
		}
		b, err := p.registry.New(name, sc, deps)
		if err != nil {
			return nil, err
		}
		builders[i] = b
	}

	collections := make([]interleave.Collection, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.General.Workers)

	for i, name := range names {
		g.Go(func() error {
			timer := p.logger.StartTimer("build source").WithField("source", name)

			items, err := builders[i].Build(gctx)
			if err != nil {
				timer.StopWithError(err)
				return tterr.Wrap(err, tterr.CodeSourceFailed, "failed to build source").
					WithDetail("source", name)
			}

			if err := textio.WriteLines(p.cfg.RawPath(name+".txt"), items); err != nil {
				timer.StopWithError(err)
				return err
			}

			timer.WithField("items", len(items)).Stop()
			collections[i] = interleave.Collection{Name: name, Items: items}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return collections, nil
}

// Build builds every source, interleaves them according to the sampling plan
// and writes the dataset file
func (p *Pipeline) Build(ctx context.Context) (*Report, error) {
	start := time.Now()

	// Fail before any source is fetched
	if err := p.cfg.ValidatePlan(); err != nil {
		return nil, err
	}

	collections, err := p.BuildSources(ctx)
	if err != nil {
		return nil, err
	}

	plan := interleave.Plan{
		Weights: p.cfg.Interleave.SamplingProbabilities,
		Full:    p.cfg.Interleave.IncludeEntireDataset,
	}
	var opts []interleave.Option
	if p.cfg.Interleave.Exhaustion == config.ExhaustionSkip {
		opts = append(opts, interleave.WithExhaustion(interleave.SkipExhausted))
	}

	stream, err := plan.Stream(collections, p.cfg.General.Seed, opts...)
	if err != nil {
		return nil, err
	}

	report := &Report{Output: p.cfg.ProcessedPath(p.cfg.Interleave.OutputFile)}
	for _, c := range collections {
		weight, sampled := p.cfg.Interleave.SamplingProbabilities[c.Name]
		report.Sources = append(report.Sources, SourceCount{
			Name:    c.Name,
			Kind:    p.cfg.Sources[c.Name].Kind,
			Count:   len(c.Items),
			Sampled: sampled,
			Weight:  weight,
		})
	}

	w, err := textio.Create(report.Output)
	if err != nil {
		return nil, err
	}

	limit := p.cfg.Interleave.MaxSamples
	for item := range stream.All() {
		if limit > 0 && w.Count() >= limit {
			break
		}
		if err := w.WriteLine(item); err != nil {
			w.Close()
			return nil, err
		}
	}
	report.Written = w.Count()
	if err := w.Close(); err != nil {
		return nil, err
	}

	report.Duration = time.Since(start)
	p.logger.Info("Saved dataset", "path", report.Output, "samples", report.Written)
	return report, nil
}
