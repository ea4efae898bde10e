package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/lanternfish/population"
)

func newTraceCommand(a *app) *cobra.Command {
	traceCmd := &cobra.Command{
		Use:   "trace [file|-]",
		Short: "Print the timers of every fish after each day.",
		Long: "Simulates every fish one by one and prints all the timers " +
			"after each day. The population is bounded by --limit.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTrace(cmd, args)
		},
	}

	traceCmd.Flags().Int("limit", 1<<16, "largest population to print")

	return traceCmd
}

func (a *app) runTrace(cmd *cobra.Command, args []string) error {
	ages, err := a.readAges(cmd, args)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	var line strings.Builder

	_, err = population.Enumerate(ages, a.cfg.Days, limit,
		func(day int, timers []int) {
			line.Reset()
			line.WriteString(dayLabel(day))

			for i, t := range timers {
				if i > 0 {
					line.WriteByte(',')
				}

				line.WriteString(strconv.Itoa(t))
			}

			fmt.Fprintln(w, line.String())
		})

	return err
}

func dayLabel(day int) string {
	switch day {
	case 0:
		return "Initial state: "
	case 1:
		return fmt.Sprintf("After %2d day:  ", day)
	default:
		return fmt.Sprintf("After %2d days: ", day)
	}
}
