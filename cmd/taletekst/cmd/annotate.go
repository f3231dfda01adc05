package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/taletekst/internal/annotate"
	"github.com/msto63/taletekst/internal/textio"
	tterr "github.com/msto63/taletekst/pkg/core/error"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Hand-filter comment sentences",
	Long: `Splits the raw comments into candidate sentences and shows them one at
a time. Answer y to keep, n to drop or s to skip. Answers are merged into
the filtering CSV in the raw directory, which the "annotations" source
reads.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringP("user", "u", "", "annotator name")
	annotateCmd.Flags().IntP("start", "s", -1, "index of the first candidate")
	annotateCmd.Flags().IntP("num", "n", 0, "number of candidates to show")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("annotate")
	if err != nil {
		return err
	}
	defer rt.Close()

	ac := rt.cfg.Annotate
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		ac.Username = u
	}
	if s, _ := cmd.Flags().GetInt("start"); s >= 0 {
		ac.StartIndex = s
	}
	if n, _ := cmd.Flags().GetInt("num"); n > 0 {
		ac.NumSamples = n
	}
	if ac.Username == "" {
		return tterr.New(tterr.CodeMissingConfig, "no annotator name, use --user or TALETEKST_USERNAME")
	}

	p, err := rt.pipeline()
	if err != nil {
		return err
	}

	comments, err := textio.ReadLines(rt.cfg.RawPath(ac.InputFile))
	if err != nil {
		return err
	}
	candidates := annotate.Candidates(comments, p.Extractor().Splitter())
	window := annotate.Window(candidates, ac.StartIndex, ac.NumSamples)
	rt.logger.Info("annotation session", "user", ac.Username, "candidates", len(candidates), "start", ac.StartIndex, "shown", len(window))

	records, err := annotate.Run(window, ac.Username, ac.StartIndex)
	if err != nil {
		return tterr.Wrap(err, tterr.CodeInternal, "annotation session failed")
	}
	if len(records) == 0 {
		fmt.Println("No answers recorded")
		return nil
	}

	output := rt.cfg.RawPath(ac.OutputFile)
	merged, err := annotate.Save(output, records)
	if err != nil {
		return err
	}
	fmt.Printf("%d answers saved, %d sentences in %s\n", len(records), len(merged), output)
	fmt.Printf("Continue with --start %d\n", ac.StartIndex+len(window))
	return nil
}
