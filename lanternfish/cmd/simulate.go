package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/datarecording"
	"github.com/sarchlab/lanternfish/monitoring"
	"github.com/sarchlab/lanternfish/simulation"
)

func newSimulateCommand(a *app) *cobra.Command {
	simulateCmd := &cobra.Command{
		Use:   "simulate [file|-]",
		Short: "Run the day-by-day event simulation of a school.",
		Long: "Runs one event per simulated day and prints the final " +
			"population. With --record, the census of every day is written " +
			"into a sqlite database that the report command can render.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulate(cmd, args)
		},
	}

	flags := simulateCmd.Flags()
	flags.Bool("record", false, "record the census of every day")
	flags.String("db", "", "database path without extension (implies --record)")
	flags.Bool("dump-state", false, "print the final state of the school")
	flags.Bool("resources", false, "print the CPU and memory used")
	flags.String("cpuprofile", "", "write a CPU profile to this file")

	return simulateCmd
}

func (a *app) runSimulate(cmd *cobra.Command, args []string) (err error) {
	ages, err := a.readAges(cmd, args)
	if err != nil {
		return err
	}

	if a.cfg.CPUProfile != "" {
		var stop func() error

		stop, err = a.startProfile(a.cfg.CPUProfile)
		if err != nil {
			return err
		}

		defer func() {
			err = errors.Join(err, stop())
		}()
	}

	s, err := a.buildSimulation(ages)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, s.Terminate())
	}()

	total, err := s.Run()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, total)

	if dump, _ := cmd.Flags().GetBool("dump-state"); dump {
		state, err := s.School().State()
		if err != nil {
			return err
		}

		if err := monitoring.DumpState(w, &state, 2); err != nil {
			return err
		}

		fmt.Fprintln(w)
	}

	if show, _ := cmd.Flags().GetBool("resources"); show {
		r, err := monitoring.SampleResources()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "cpu: %.1f%%, memory: %d bytes\n",
			r.CPUPercent, r.MemorySize)
	}

	return nil
}

func (a *app) buildSimulation(ages []int) (*simulation.Simulation, error) {
	b := simulation.MakeBuilder().
		WithAges(ages).
		WithDays(a.cfg.Days).
		WithLogger(a.logger).
		WithProgress()

	if a.cfg.Verbose {
		b = b.WithEventLogging()
	}

	var recorder datarecording.DataRecorder

	if a.cfg.Record {
		path := a.cfg.RecordPath
		if path == "" {
			path = datarecording.DefaultPath()
		}

		var err error

		recorder, err = datarecording.New(path)
		if err != nil {
			return nil, err
		}

		a.logger.Info("recording census",
			zap.String("path", path+".sqlite3"))

		b = b.WithRecorder(recorder)
	}

	s, err := b.Build()
	if err != nil && recorder != nil {
		return nil, errors.Join(err, recorder.Close())
	}

	return s, err
}

// startProfile profiles the CPU into path. The returned function stops the
// profile and logs the busiest functions.
func (a *app) startProfile(path string) (func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	stopProfile, err := monitoring.StartCPUProfile(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	stop := func() error {
		stopProfile()

		if err := f.Close(); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		summary, err := monitoring.SummarizeProfile(data, 5)
		if err != nil {
			return err
		}

		for _, fn := range summary {
			a.logger.Info("cpu profile",
				zap.String("function", fn.Name),
				zap.Int64("flat", fn.Flat),
			)
		}

		return nil
	}

	return stop, nil
}
