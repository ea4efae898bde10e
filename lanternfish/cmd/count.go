package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/population"
)

func newCountCommand(a *app) *cobra.Command {
	countCmd := &cobra.Command{
		Use:   "count [file|-]",
		Short: "Print the population after a number of days.",
		Long: "Reads comma-separated timers from file, from stdin when the " +
			"file is \"-\", or from the configured input, and prints the " +
			"population after --days days.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCount(cmd, args)
		},
	}

	countCmd.Flags().String("method", "histogram",
		"counting method: "+strings.Join(population.CounterNames(), ", "))
	countCmd.Flags().Bool("big", false, "count without an upper bound")

	return countCmd
}

func (a *app) runCount(cmd *cobra.Command, args []string) error {
	ages, err := a.readAges(cmd, args)
	if err != nil {
		return err
	}

	a.logger.Debug("counting",
		zap.Int("fish", len(ages)),
		zap.Int("days", a.cfg.Days),
		zap.String("method", a.cfg.Method),
		zap.Bool("big", a.cfg.Big),
	)

	if a.cfg.Big {
		return a.printBigCount(cmd, ages)
	}

	counter, err := population.CounterByName(a.cfg.Method)
	if err != nil {
		return err
	}

	n, err := counter.CountAfter(ages, a.cfg.Days)
	if errors.Is(err, population.ErrOverflow) {
		a.logger.Debug("count overflows uint64, counting without bound",
			zap.String("method", a.cfg.Method))

		return a.printBigCount(cmd, ages)
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), n)

	return nil
}

func (a *app) printBigCount(cmd *cobra.Command, ages []int) error {
	n, err := population.CountAfterBig(ages, a.cfg.Days)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), n.String())

	return nil
}
