package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tiendalab/tienda-bff/internal/apicheck"
)

type loadOptions struct {
	baseURL  string
	users    int
	duration time.Duration
	minWait  time.Duration
	maxWait  time.Duration
}

func newLoadCmd() *cobra.Command {
	opts := &loadOptions{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Generate weighted synthetic load against the product routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "API base URL (default from check.base_url)")
	cmd.Flags().IntVar(&opts.users, "users", 10, "number of concurrent virtual users")
	cmd.Flags().DurationVar(&opts.duration, "duration", time.Minute, "how long to generate load")
	cmd.Flags().DurationVar(&opts.minWait, "min-wait", time.Second, "minimum pause between tasks")
	cmd.Flags().DurationVar(&opts.maxWait, "max-wait", 5*time.Second, "maximum pause between tasks")
	return cmd
}

func runLoad(cmd *cobra.Command, opts *loadOptions) error {
	cfg, err := loadCheckConfig(cmd)
	if err != nil {
		return err
	}

	baseURL := cfg.Check.BaseURL
	if opts.baseURL != "" {
		baseURL = opts.baseURL
	}

	gen, err := apicheck.NewLoadGenerator(apicheck.LoadConfig{
		BaseURL:  baseURL,
		Users:    opts.users,
		Duration: opts.duration,
		MinWait:  opts.minWait,
		MaxWait:  opts.maxWait,
		Timeout:  time.Duration(cfg.Check.TimeoutSeconds) * time.Second,
	}, apicheck.DefaultTasks())
	if err != nil {
		return err
	}

	stats, err := gen.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tREQUESTS\tFAILURES\tAVG\tMAX")
	rows := append(stats.Tasks(), stats.Totals())
	for _, ts := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			ts.Name, ts.Requests, ts.Failures,
			ts.AvgLatency().Round(time.Millisecond), ts.MaxLatency.Round(time.Millisecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	elapsed := stats.Elapsed.Seconds()
	if elapsed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%.1f req/s over %s\n",
			float64(stats.Totals().Requests)/elapsed, stats.Elapsed.Round(time.Millisecond))
	}
	return nil
}
