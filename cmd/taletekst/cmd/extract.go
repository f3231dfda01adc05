package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/taletekst/internal/textio"
)

var extractCmd = &cobra.Command{
	Use:   "extract <input> <output>",
	Short: "Extract clean sentences from a text file",
	Long: `Splits every line of the input file into sentences, normalizes
whitespace and drops ellipses, abbreviation tails and short sentences.
The result is written one sentence per line.`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("extract")
	if err != nil {
		return err
	}
	defer rt.Close()

	p, err := rt.pipeline()
	if err != nil {
		return err
	}

	lines, err := textio.ReadLines(args[0])
	if err != nil {
		return err
	}
	sentences := p.Extractor().Extract(lines)
	if err := textio.WriteLines(args[1], sentences); err != nil {
		return err
	}

	rt.logger.Info("sentences extracted", "input", args[0], "lines", len(lines), "sentences", len(sentences))
	fmt.Printf("%d sentences written to %s\n", len(sentences), args[1])
	return nil
}
