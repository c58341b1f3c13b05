package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/intensity/internal/script"
	"github.com/Sumatoshi-tech/intensity/pkg/observability"
)

// ErrValidationFailed is returned when a script does not match the schema.
var ErrValidationFailed = errors.New("script validation failed")

func newValidateCommand(opts *globalOptions, initObs InitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script|->",
		Short: "Validate a script against the script schema",
		Long: `Validate a YAML or JSON script against the embedded script schema.

Examples:
  intensity validate steps.yaml
  intensity validate - < steps.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			env, err := setup(cmd, opts, observability.ModeValidate, initObs)
			if err != nil {
				return err
			}

			defer func() {
				err = errors.Join(err, env.close(cmd.Context()))
			}()

			data, label, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			return runValidate(cmd.OutOrStdout(), data, label, env.cfg.Output.Color, opts.quiet)
		},
	}
}

func runValidate(out io.Writer, data []byte, label string, colorize, quiet bool) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, c := range []*color.Color{green, red, yellow} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	violations, err := script.Check(data)
	if err != nil {
		red.Fprintf(out, "Script is not valid YAML or JSON (%s)\n", label)

		return err
	}

	if len(violations) == 0 {
		if !quiet {
			sc, parseErr := script.Parse(data)
			if parseErr != nil {
				return parseErr
			}

			green.Fprintf(out, "Script is valid (%s)\n", label)
			green.Fprintf(out, "  Steps: %d\n", len(sc.Steps))
		}

		return nil
	}

	red.Fprintf(out, "Script validation failed (%s)\n", label)
	yellow.Fprintf(out, "  Violations: %d\n", len(violations))

	fmt.Fprintf(out, "\nErrors:\n")

	for _, v := range violations {
		red.Fprintf(out, "  - %s: %s\n", v.Field, v.Description)
	}

	return fmt.Errorf("%w: %s", ErrValidationFailed, label)
}
