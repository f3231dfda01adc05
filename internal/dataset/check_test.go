package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/msto63/taletekst/internal/fetch"
	"github.com/msto63/taletekst/internal/source"
	"github.com/msto63/taletekst/internal/textio"
	"github.com/msto63/taletekst/pkg/core/config"
	"github.com/msto63/taletekst/pkg/core/health"
)

type failingFetcher struct{}

func (failingFetcher) Page(ctx context.Context, url string) (*fetch.Page, error) {
	return nil, errors.New("offline")
}

func checkStatus(report *health.Report, name string) health.Status {
	for _, c := range report.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func TestPipeline_Check(t *testing.T) {
	cfg := testConfig(t)
	p := newPipeline(t, cfg)

	report := p.Check(context.Background(), false)
	if report.Healthy() {
		t.Error("missing comments input passed")
	}
	if got := checkStatus(report, "source:comments"); got != health.StatusUnhealthy {
		t.Errorf("source:comments = %v", got)
	}
	if got := checkStatus(report, "source:times"); got != health.StatusHealthy {
		t.Errorf("source:times = %v", got)
	}

	writeComments(t, cfg)
	report = p.Check(context.Background(), false)
	if !report.Healthy() {
		t.Errorf("report = %+v", report.Checks)
	}
	if got := checkStatus(report, "phoneme:inventory"); got != health.StatusDegraded {
		t.Errorf("phoneme:inventory = %v, want degraded", got)
	}
}

func TestPipeline_CheckInvalidPlan(t *testing.T) {
	cfg := testConfig(t)
	cfg.Interleave.IncludeEntireDataset = append(cfg.Interleave.IncludeEntireDataset, "comments")
	writeComments(t, cfg)

	report := newPipeline(t, cfg).Check(context.Background(), false)
	if got := checkStatus(report, "config"); got != health.StatusUnhealthy {
		t.Errorf("config = %v, want unhealthy", got)
	}
}

func TestPipeline_CheckOnline(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sources["stations"] = config.SourceConfig{Kind: source.KindHTMLTable, URL: "https://example.org/stations", Column: "Navn"}
	cfg.Interleave.IncludeEntireDataset = append(cfg.Interleave.IncludeEntireDataset, "stations")
	writeComments(t, cfg)

	p, err := New(cfg, WithFetcher(failingFetcher{}))
	if err != nil {
		t.Fatal(err)
	}

	if got := checkStatus(p.Check(context.Background(), false), "source:stations"); got != health.StatusDegraded {
		t.Errorf("offline without cache = %v, want degraded", got)
	}
	if got := checkStatus(p.Check(context.Background(), true), "source:stations"); got != health.StatusUnhealthy {
		t.Errorf("unreachable without cache = %v, want unhealthy", got)
	}

	if err := textio.WriteLines(cfg.RawPath("stations.txt"), []string{"Aarhus H"}); err != nil {
		t.Fatal(err)
	}
	if got := checkStatus(p.Check(context.Background(), true), "source:stations"); got != health.StatusDegraded {
		t.Errorf("unreachable with cache = %v, want degraded", got)
	}
}
