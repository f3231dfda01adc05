package dataset

import (
	"context"
	"slices"

	"github.com/msto63/taletekst/internal/source"
	"github.com/msto63/taletekst/pkg/core/health"
	"github.com/msto63/taletekst/pkg/core/version"
)

// Check runs preflight checks over the configuration, the data
// directories and every source input. Web sources are probed only when
// online is set; otherwise their cache file is inspected.
func (p *Pipeline) Check(ctx context.Context, online bool) *health.Report {
	cfg := p.cfg
	registry := health.NewRegistry("taletekst", version.App)

	registry.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
		if err := cfg.Validate(); err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: "valid"}
	})
	registry.Register(health.DirWritableCheck("dir:raw", cfg.RawPath("")))
	registry.Register(health.DirWritableCheck("dir:processed", cfg.ProcessedPath("")))
	registry.Register(health.FileCheck("phoneme:inventory", cfg.RawPath(cfg.Phoneme.InventoryFile), false))
	registry.Register(health.FileCheck("phoneme:corpus", cfg.RawPath(cfg.Phoneme.CorpusFile), false))
	if cfg.Sentences.PunktModel != "" {
		registry.Register(health.FileCheck("punkt_model", cfg.Sentences.PunktModel, true))
	}

	kinds := p.registry.Kinds()
	probe := func(ctx context.Context, url string) error {
		_, err := p.fetcher.Page(ctx, url)
		return err
	}

	for _, name := range cfg.SourceNames() {
		sc := cfg.Sources[name]
		id := "source:" + name
		cache := cfg.RawPath(name + ".txt")

		switch {
		case !slices.Contains(kinds, sc.Kind):
			kind := sc.Kind
			registry.RegisterFunc(id, func(ctx context.Context) health.CheckResult {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: "unknown kind " + kind}
			})
		case sc.Kind == source.KindArticles, sc.Kind == source.KindLines, sc.Kind == source.KindAnnotations:
			registry.Register(health.FileCheck(id, cfg.RawPath(sc.Path), true))
		case sc.Kind == source.KindHTMLTable, sc.Kind == source.KindCrawl:
			if !online {
				registry.Register(health.FileCheck(id, cache, false))
				continue
			}
			if sc.Refresh {
				cache = ""
			}
			registry.Register(health.ReachableCheck(id, sc.URL, cache, probe))
		default:
			registry.RegisterFunc(id, func(ctx context.Context) health.CheckResult {
				return health.CheckResult{Status: health.StatusHealthy, Message: "generated"}
			})
		}
	}

	report := registry.Check(ctx)
	for _, c := range report.Checks {
		if c.Status != health.StatusHealthy {
			p.logger.Warn("preflight check", "check", c.Name, "status", string(c.Status), "message", c.Message)
		}
	}
	return report
}
