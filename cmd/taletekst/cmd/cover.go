package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/taletekst/internal/dataset"
)

var coverRank bool

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Select a phoneme covering set",
	Long: `Streams the ranked corpus and selects sentences until every phoneme
has min_docs_per_phoneme example sentences. The set is written to the raw
directory so a "lines" source can include it in the dataset.

Use --rank to rank the corpus first.`,
	RunE: runCover,
}

func init() {
	coverCmd.Flags().BoolVar(&coverRank, "rank", false, "rank the corpus before selecting")
	rootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("cover")
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

	var report *dataset.CoverReport
	if coverRank {
		report, err = p.Cover(ctx)
	} else {
		report, err = p.SelectCovering(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%d of %d sentences selected, written to %s\n", report.Selected, report.Consumed, report.Output)
	if !report.Complete() {
		fmt.Printf("Unsatisfied phonemes: %s\n", report.Unsatisfied)
	}
	return nil
}
