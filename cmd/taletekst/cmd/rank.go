package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the encyclopedia corpus by phoneme coverage",
	Long: `Reads the wiki corpus file from the raw directory, extracts sentences,
counts phoneme example words per sentence and stores the sentences
ordered by unique phoneme count in the ranked corpus store.`,
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringP("strategy", "s", "", "sort strategy (da, en, all)")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("rank")
	if err != nil {
		return err
	}
	defer rt.Close()

	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		rt.cfg.Phoneme.SortStrategy = s
		if err := rt.cfg.Validate(); err != nil {
			return err
		}
	}

	p, err := rt.pipeline()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	n, err := p.RankCorpus(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d sentences ranked by %q\n", n, rt.cfg.Phoneme.SortStrategy)
	return nil
}
