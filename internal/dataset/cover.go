package dataset

import (
	"context"
	"os"
	"time"

	"github.com/msto63/taletekst/internal/corpusstore"
	"github.com/msto63/taletekst/internal/phoneme"
	"github.com/msto63/taletekst/internal/textio"
	tterr "github.com/msto63/taletekst/pkg/core/error"
)

// CoverReport summarizes a phoneme covering run
type CoverReport struct {
	Ranked      int64
	Consumed    int
	Selected    int
	Unsatisfied phoneme.Target
	Output      string
	Duration    time.Duration
}

// Complete reports whether every phoneme was covered
func (r *CoverReport) Complete() bool {
	return len(r.Unsatisfied) == 0
}

func (p *Pipeline) inventory() (phoneme.Inventory, error) {
	return phoneme.LoadInventory(p.cfg.RawPath(p.cfg.Phoneme.InventoryFile))
}

func (p *Pipeline) openStore() (*corpusstore.Store, error) {
	return corpusstore.Open(corpusstore.Config{Path: p.cfg.ProcessedPath(p.cfg.Phoneme.StorePath)})
}

// RankCorpus splits the encyclopedia corpus into sentences, annotates their
// phonemes, sorts them by richness and stores them in rank order
func (p *Pipeline) RankCorpus(ctx context.Context) (int64, error) {
	timer := p.logger.StartTimer("rank corpus")

	inv, err := p.inventory()
	if err != nil {
		timer.StopWithError(err)
		return 0, err
	}

	path := p.cfg.RawPath(p.cfg.Phoneme.CorpusFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		err = tterr.Wrap(err, tterr.CodeIO, "failed to read corpus").WithDetail("path", path)
		timer.StopWithError(err)
		return 0, err
	}

	text := phoneme.CleanWikiMarkers(string(raw), p.cfg.Phoneme.SplitStrings)
	sentences := p.extractor.Extract([]string{text})

	counter := phoneme.NewCounter(inv, phoneme.CountOptions{FoldCase: p.cfg.Phoneme.FoldCase})
	docs := make([]phoneme.RankedDocument, len(sentences))
	for i, s := range sentences {
		docs[i] = counter.Annotate(s)
	}
	if err := phoneme.Rank(docs, p.cfg.Phoneme.SortStrategy); err != nil {
		timer.StopWithError(err)
		return 0, err
	}

	store, err := p.openStore()
	if err != nil {
		timer.StopWithError(err)
		return 0, err
	}
	defer store.Close()

	if err := store.Reset(ctx); err != nil {
		timer.StopWithError(err)
		return 0, err
	}
	if err := store.Insert(ctx, docs...); err != nil {
		timer.StopWithError(err)
		return 0, err
	}
	if err := store.SetMeta(ctx, "sort_strategy", p.cfg.Phoneme.SortStrategy); err != nil {
		timer.StopWithError(err)
		return 0, err
	}

	timer.WithField("documents", len(docs)).Stop()
	return int64(len(docs)), nil
}

// SelectCovering streams the ranked corpus through the covering selector and
// writes the selected sentences to the raw directory. Partial coverage is
// logged and reported, not treated as an error.
func (p *Pipeline) SelectCovering(ctx context.Context) (*CoverReport, error) {
	start := time.Now()

	inv, err := p.inventory()
	if err != nil {
		return nil, err
	}

	store, err := p.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	ranked, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}

	target := phoneme.NewTarget(inv, p.cfg.Phoneme.MinDocsPerPhoneme)
	sel, err := phoneme.BuildCoveringSet(store.Documents(ctx), target)
	if err != nil {
		return nil, err
	}

	report := &CoverReport{
		Ranked:      ranked,
		Consumed:    sel.Consumed,
		Selected:    len(sel.Selected),
		Unsatisfied: sel.Unsatisfied,
		Output:      p.cfg.RawPath(p.cfg.Phoneme.OutputFile),
	}

	texts := make([]string, len(sel.Selected))
	for i, d := range sel.Selected {
		texts[i] = d.Text
	}
	if err := textio.WriteLines(report.Output, texts); err != nil {
		return nil, err
	}

	if !sel.Complete() {
		p.logger.Warn("Phoneme coverage incomplete",
			"missing", len(sel.Unsatisfied), "outstanding", sel.Unsatisfied.String())
	}
	report.Duration = time.Since(start)
	p.logger.Info("Saved phoneme covering set", "path", report.Output, "documents", report.Selected)
	return report, nil
}

// Cover ranks the corpus and selects the covering set
func (p *Pipeline) Cover(ctx context.Context) (*CoverReport, error) {
	ranked, err := p.RankCorpus(ctx)
	if err != nil {
		return nil, err
	}
	report, err := p.SelectCovering(ctx)
	if err != nil {
		return nil, err
	}
	report.Ranked = ranked
	return report, nil
}
