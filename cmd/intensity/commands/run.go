package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intensity/internal/render"
	"github.com/Sumatoshi-tech/intensity/internal/script"
	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/observability"
)

const (
	runCmdUse   = "run <script|->"
	runArgCount = 1

	formatFlag  = "format"
	chartFlag   = "chart"
	lingerFlag  = "linger"
	chartPerm   = 0o600
	chartSuffix = " intensity"
)

// reportFlags controls how a finished run is printed.
type reportFlags struct {
	format string
	chart  string
	linger time.Duration
}

func (rf *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.format, formatFlag, "", "output format: table, text or json (default from config)")
	cmd.Flags().StringVar(&rf.chart, chartFlag, "", "write an HTML step chart of the final segments to this file")
	cmd.Flags().DurationVar(&rf.linger, lingerFlag, 0, "keep the metrics endpoint up this long after the run")
}

func newRunCommand(opts *globalOptions, initObs InitFunc) *cobra.Command {
	rf := &reportFlags{}

	cmd := &cobra.Command{
		Use:   runCmdUse,
		Short: "Execute a script of store operations",
		Long: `Execute a YAML or JSON script against a fresh intensity store.

Rejected steps are reported and skipped; the run continues with the next step.

Examples:
  intensity run steps.yaml
  intensity run --format json - < steps.json
  intensity run --chart final.html steps.yaml
`,
		Args: cobra.ExactArgs(runArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, _, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			sc, err := script.Parse(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			return executeScript(cmd, opts, rf, sc, observability.ModeRun, initObs)
		},
	}

	rf.register(cmd)

	return cmd
}

func newDemoCommand(opts *globalOptions, initObs InitFunc) *cobra.Command {
	rf := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Execute the built-in reference scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScript(cmd, opts, rf, script.Reference(), observability.ModeDemo, initObs)
		},
	}

	rf.register(cmd)

	return cmd
}

func executeScript(
	cmd *cobra.Command, opts *globalOptions, rf *reportFlags,
	sc *script.Script, mode observability.AppMode, initObs InitFunc,
) (err error) {
	env, err := setup(cmd, opts, mode, initObs)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, env.close(context.WithoutCancel(cmd.Context())))
	}()

	format := rf.format
	if format == "" {
		format = env.cfg.Output.Format
	}

	sess := session.New(env.sessionOptions()...)
	report := sess.Run(cmd.Context(), sc)

	if !opts.quiet {
		renderErr := render.Report(cmd.OutOrStdout(), report, format, render.Options{Color: env.cfg.Output.Color})
		if renderErr != nil {
			return renderErr
		}
	}

	if rf.chart != "" {
		chartErr := writeChart(rf.chart, report)
		if chartErr != nil {
			return chartErr
		}

		env.logger.InfoContext(cmd.Context(), "chart written", "path", rf.chart)
	}

	if rf.linger > 0 && env.server != nil {
		lingerMetrics(cmd.Context(), rf.linger)
	}

	return nil
}

func writeChart(path string, report session.Report) (err error) {
	//nolint:gosec // output path is supplied by the user on the command line.
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, chartPerm)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}

	defer func() {
		closeErr := file.Close()
		if closeErr != nil && err == nil {
			err = fmt.Errorf("close chart file: %w", closeErr)
		}
	}()

	title := report.Name
	if title == "" {
		title = binaryName
	} else {
		title += chartSuffix
	}

	return render.Chart(file, title, report.Final)
}

// lingerMetrics blocks until d elapses or the process is interrupted.
func lingerMetrics(ctx context.Context, d time.Duration) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
