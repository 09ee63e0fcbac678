package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tiendalab/tienda-bff/internal/apicheck"
)

type runOptions struct {
	baseURL   string
	outDir    string
	scenarios string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenario suite once and write response fixtures",
		Long: `Executes every scenario in order: one request, a status and key
assertion, and the pretty-printed response written to the output directory.
Failures are reported at the end and make the command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScenarios(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default from check.base_url)")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "fixture output directory (default from check.output_dir)")
	cmd.Flags().StringVar(&opts.scenarios, "scenarios", "", "YAML scenario file (default: built-in suite)")
	return cmd
}

func runScenarios(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadCheckConfig(cmd)
	if err != nil {
		return err
	}

	check := cfg.Check
	if opts.baseURL != "" {
		check.BaseURL = opts.baseURL
	}
	if opts.outDir != "" {
		check.OutputDir = opts.outDir
	}

	var scenarios []apicheck.Scenario
	if opts.scenarios != "" {
		scenarios, err = apicheck.LoadScenarios(opts.scenarios)
	} else {
		scenarios, err = apicheck.DefaultScenarios()
	}
	if err != nil {
		return err
	}

	report, runErr := apicheck.NewRunner(check, scenarios).Run(cmd.Context())
	if report == nil {
		return runErr
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RESULT\tGROUP\tSCENARIO\tSTATUS\tTIME")
	for _, res := range report.Results {
		result := "PASS"
		if !res.Passed() {
			result = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", result, res.Group, res.Scenario, res.Status, res.Duration.Round(time.Millisecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed; fixtures in %s\n",
		report.Passed(), report.Failed(), check.OutputDir)

	if runErr != nil {
		return fmt.Errorf("scenario run interrupted: %w", runErr)
	}
	if report.Failed() > 0 {
		return fmt.Errorf("%d scenario(s) failed: %w", report.Failed(), report.Err())
	}
	return nil
}
