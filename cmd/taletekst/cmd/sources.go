package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/msto63/taletekst/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured sources",
	Long: `Lists every configured source with its kind and its place in the
sampling plan.`,
	RunE: runSourcesList,
}

var sourcesBuildCmd = &cobra.Command{
	Use:   "build [name...]",
	Short: "Build sources into the raw directory",
	Long: `Builds the named sources, or all of them, and saves each collection
to <data_dir>/<raw_dir>/<name>.txt. Cached crawls are reused unless the
source sets refresh = true.`,
	RunE: runSourcesBuild,
}

func init() {
	sourcesCmd.AddCommand(sourcesBuildCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("sources")
	if err != nil {
		return err
	}
	defer rt.Close()

	full := make(map[string]bool, len(rt.cfg.Interleave.IncludeEntireDataset))
	for _, name := range rt.cfg.Interleave.IncludeEntireDataset {
		full[name] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tKIND\tPLAN\tLOCATION")
	for _, name := range rt.cfg.SourceNames() {
		sc := rt.cfg.Sources[name]
		plan := "full"
		if !full[name] {
			plan = fmt.Sprintf("%.2f", rt.cfg.Interleave.SamplingProbabilities[name])
		}
		location := sc.Path
		if sc.URL != "" {
			location = sc.URL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, sc.Kind, plan, location)
	}
	w.Flush()

	fmt.Printf("\nAvailable kinds: %s\n", strings.Join(source.NewRegistry().Kinds(), ", "))
	return nil
}

func runSourcesBuild(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("sources")
	if err != nil {
		return err
	}
	defer rt.Close()

	p, err := rt.pipeline()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	collections, err := p.BuildSources(ctx, args...)
	if err != nil {
		return err
	}
	for _, c := range collections {
		fmt.Printf("  [+] %-28s %d items -> %s\n", c.Name, len(c.Items), rt.cfg.RawPath(c.Name+".txt"))
	}
	return nil
}
