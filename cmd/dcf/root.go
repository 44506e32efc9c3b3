package main

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"dcf-engine/internal/engine"
	"dcf-engine/internal/model"
	"dcf-engine/internal/valuation"
)

const (
	exitInvalidInput = 2
	exitCalculation  = 3
)

// exitError carries the process exit code for a failed run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	var rateFormat string

	cmd := &cobra.Command{
		Use:   "dcf [json-payload]",
		Short: "Compute a discounted cash flow valuation",
		Long: `Reads a valuation request as JSON from the first argument or stdin and
prints the enterprise and equity value, rounded to two decimals.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			if len(args) == 1 {
				raw = []byte(args[0])
			} else {
				b, err := io.ReadAll(stdin)
				if err != nil {
					return &exitError{code: exitInvalidInput, err: fmt.Errorf("read input: %w", err)}
				}
				raw = b
			}
			return run(raw, rateFormat, stdout)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.Flags().StringVar(&rateFormat, "rate-format", model.RateFormatRatio, `how rates are expressed when the payload omits rate_format: "ratio" or "percent"`)
	return cmd
}

func run(raw []byte, rateFormat string, out io.Writer) error {
	if rateFormat != model.RateFormatRatio && rateFormat != model.RateFormatPercent {
		return &exitError{code: exitInvalidInput, err: fmt.Errorf("invalid --rate-format %q", rateFormat)}
	}

	var req model.ValuationRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return &exitError{code: exitInvalidInput, err: fmt.Errorf("invalid JSON input: %w", err)}
	}
	if err := req.Validate(); err != nil {
		return &exitError{code: exitInvalidInput, err: fmt.Errorf("validation error: %w", err)}
	}

	resp, err := engine.Process(&req, engine.Options{DefaultRateFormat: rateFormat})
	if err != nil {
		var failure *valuation.Failure
		if errors.As(err, &failure) {
			return &exitError{code: exitInvalidInput, err: failure}
		}
		if errors.Is(err, engine.ErrNonFiniteResult) {
			return &exitError{code: exitCalculation, err: fmt.Errorf("calculation error: %w", err)}
		}
		return err
	}

	body, err := json.MarshalIndent(resp.Result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(body))
	return err
}
