package dataset

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/msto63/taletekst/internal/source"
	"github.com/msto63/taletekst/internal/textio"
	"github.com/msto63/taletekst/pkg/core/config"
	tterr "github.com/msto63/taletekst/pkg/core/error"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		General: config.GeneralConfig{
			DataDir: t.TempDir(), RawDir: "raw", ProcessedDir: "processed", Seed: 4242, Workers: 2,
		},
		Sentences: config.SentenceConfig{MinSentenceLength: 5},
		Interleave: config.InterleaveConfig{
			SamplingProbabilities: map[string]float64{"comments": 1},
			IncludeEntireDataset:  []string{"times"},
			Exhaustion:            config.ExhaustionStop,
			OutputFile:            "dataset.txt",
		},
		Phoneme: config.PhonemeConfig{
			InventoryFile:     "phonemes.json",
			CorpusFile:        "wiki.txt",
			StorePath:         "ranked.db",
			SortStrategy:      "all",
			MinDocsPerPhoneme: 1,
			SplitStrings:      []string{"_START_ARTICLE_", "_START_PARAGRAPH_", "_NEWLINE_"},
			OutputFile:        "phoneme_covering_set.txt",
		},
		Sources: map[string]config.SourceConfig{
			"times":    {Kind: source.KindTimes},
			"comments": {Kind: source.KindLines, Path: "comments_in.txt"},
		},
	}
}

func newPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func writeComments(t *testing.T, cfg *config.Config) []string {
	t.Helper()
	comments := []string{"Første kommentar.", "Anden kommentar.", "Tredje kommentar."}
	if err := textio.WriteLines(cfg.RawPath("comments_in.txt"), comments); err != nil {
		t.Fatal(err)
	}
	return comments
}

func TestPipeline_Build(t *testing.T) {
	cfg := testConfig(t)
	comments := writeComments(t, cfg)

	report, err := newPipeline(t, cfg).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	lines, err := textio.ReadLines(report.Output)
	if err != nil {
		t.Fatal(err)
	}
	times := len(source.Times())
	if len(lines) != times+len(comments) || report.Written != len(lines) {
		t.Fatalf("wrote %d lines (report %d), want %d", len(lines), report.Written, times+len(comments))
	}

	// Full collections come first
	for _, line := range lines[:times] {
		if slices.Contains(comments, line) {
			t.Fatalf("sampled item %q inside the non-sampling prefix", line)
		}
	}
	tail := slices.Clone(lines[times:])
	slices.Sort(tail)
	want := slices.Clone(comments)
	slices.Sort(want)
	if !slices.Equal(tail, want) {
		t.Errorf("sampled tail = %q, want %q", tail, want)
	}

	// Raw collections are saved
	for _, name := range []string{"times", "comments"} {
		if !textio.Exists(cfg.RawPath(name + ".txt")) {
			t.Errorf("raw file for %s missing", name)
		}
	}

	if len(report.Sources) != 2 || report.Sources[0].Name != "comments" || !report.Sources[0].Sampled {
		t.Errorf("report sources = %+v", report.Sources)
	}
}

func TestPipeline_BuildReproducible(t *testing.T) {
	cfg := testConfig(t)
	writeComments(t, cfg)

	p := newPipeline(t, cfg)
	first, err := p.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(first.Output)

	second, err := p.Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(second.Output)

	if string(a) != string(b) {
		t.Error("two builds with the same seed differ")
	}
}

func TestPipeline_BuildMaxSamples(t *testing.T) {
	cfg := testConfig(t)
	writeComments(t, cfg)
	cfg.Interleave.MaxSamples = 10

	report, err := newPipeline(t, cfg).Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Written != 10 {
		t.Errorf("Written = %d, want 10", report.Written)
	}
}

func TestPipeline_BuildFailsFastOnPlan(t *testing.T) {
	cfg := testConfig(t)
	cfg.Interleave.IncludeEntireDataset = nil

	_, err := newPipeline(t, cfg).Build(context.Background())
	if !tterr.HasCode(err, tterr.CodeSamplingPlan) {
		t.Errorf("error = %v, want SAMPLING_PLAN", err)
	}
	if textio.Exists(cfg.RawPath("times.txt")) {
		t.Error("sources were built despite an invalid plan")
	}
}

func TestPipeline_BuildSourceFailure(t *testing.T) {
	cfg := testConfig(t)

	_, err := newPipeline(t, cfg).Build(context.Background())
	if !tterr.HasCode(err, tterr.CodeNotFound) {
		t.Errorf("error = %v, want the missing input to surface", err)
	}
	if !strings.Contains(err.Error(), "failed to build source") {
		t.Errorf("error = %v", err)
	}
}

func TestPipeline_BuildSourcesSubset(t *testing.T) {
	cfg := testConfig(t)

	collections, err := newPipeline(t, cfg).BuildSources(context.Background(), "times")
	if err != nil {
		t.Fatal(err)
	}
	if len(collections) != 1 || collections[0].Name != "times" {
		t.Errorf("collections = %+v", collections)
	}

	if _, err := newPipeline(t, cfg).BuildSources(context.Background(), "nope"); !tterr.HasCode(err, tterr.CodeNotFound) {
		t.Errorf("unknown source error = %v", err)
	}
}

const testInventory = `{
  "da": [{"name": "a", "examples": ["kat"]}, {"name": "ø", "examples": ["sø"]}],
  "en": [{"name": "θ", "examples": ["think"]}]
}`

func writeCorpus(t *testing.T, cfg *config.Config, corpus string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(cfg.RawPath("x")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.RawPath("phonemes.json"), []byte(testInventory), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.RawPath("wiki.txt"), []byte(corpus), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPipeline_Cover(t *testing.T) {
	cfg := testConfig(t)
	writeCorpus(t, cfg,
		"_START_ARTICLE_Dyr_START_PARAGRAPH_En kat sad ved en sø i går._NEWLINE_"+
			"Der var ingen lyde her.\nI think det var en kat.\n")

	report, err := newPipeline(t, cfg).Cover(context.Background())
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}

	if report.Ranked != 3 {
		t.Errorf("Ranked = %d, want 3", report.Ranked)
	}
	if !report.Complete() {
		t.Errorf("Unsatisfied = %v", report.Unsatisfied)
	}

	selected, err := textio.ReadLines(report.Output)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"En kat sad ved en sø i går.", "I think det var en kat."}
	if !slices.Equal(selected, want) {
		t.Errorf("covering set = %q, want %q", selected, want)
	}
}

func TestPipeline_CoverPartial(t *testing.T) {
	cfg := testConfig(t)
	writeCorpus(t, cfg, "En kat sad stille.\n")

	report, err := newPipeline(t, cfg).Cover(context.Background())
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	if report.Complete() {
		t.Error("Complete() = true for partial coverage")
	}
	if len(report.Unsatisfied) != 2 || report.Selected != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestPipeline_CoverMissingInventory(t *testing.T) {
	cfg := testConfig(t)
	if _, err := newPipeline(t, cfg).Cover(context.Background()); !tterr.HasCode(err, tterr.CodeInventoryError) {
		t.Errorf("error = %v, want INVENTORY_ERROR", err)
	}
}
