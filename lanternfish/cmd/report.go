package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/report"
)

func newReportCommand(a *app) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render a recorded census as an HTML page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runReport(cmd)
		},
	}

	reportCmd.Flags().String("db", "", "recorded database, with extension")
	reportCmd.Flags().String("out", "lanternfish_report.html", "output file")
	reportCmd.Flags().Bool("open", false, "open the report in a browser")
	_ = reportCmd.MarkFlagRequired("db")

	return reportCmd
}

func (a *app) runReport(cmd *cobra.Command) error {
	flags := cmd.Flags()
	dbPath, _ := flags.GetString("db")
	outPath, _ := flags.GetString("out")
	open, _ := flags.GetBool("open")

	if err := report.Build(cmd.Context(), dbPath, outPath); err != nil {
		return err
	}

	a.logger.Info("report written", zap.String("path", outPath))

	if open {
		return report.Open(outPath)
	}

	return nil
}
