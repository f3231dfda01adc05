package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	tterr "github.com/msto63/taletekst/pkg/core/error"
	"github.com/msto63/taletekst/pkg/core/health"
)

var checkOnline bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run preflight checks",
	Long: `Checks the configuration, the data directories and the input of every
source. With --online the web sources are fetched once; without it only
their cached copies are inspected.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkOnline, "online", false, "probe web sources")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime("check")
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

	report := p.Check(ctx, checkOnline)
	for _, c := range report.Checks {
		icon := "[+]"
		switch c.Status {
		case health.StatusDegraded:
			icon = "[~]"
		case health.StatusUnhealthy:
			icon = "[-]"
		}
		fmt.Printf("  %s %-28s %s\n", icon, c.Name, c.Message)
	}
	fmt.Printf("\n%s\n", report)

	if !report.Healthy() {
		return tterr.New(tterr.CodeInvalidConfig, "preflight checks failed")
	}
	return nil
}
