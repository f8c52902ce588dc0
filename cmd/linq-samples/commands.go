package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/paveg/linq/internal/samples"
	"github.com/paveg/linq/internal/version"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the samples grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.list(category)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list one category")
	return cmd
}

func (a *app) list(category string) {
	for _, g := range a.registry.Categories() {
		if category != "" && !strings.EqualFold(g.Key(), category) {
			continue
		}
		a.heading.Fprintln(a.out, g.Key())
		for _, s := range g.Elements() {
			fmt.Fprintf(a.out, "  %-20s %s\n", s.Name, s.Title)
		}
	}
}

func newRunCmd(a *app) *cobra.Command {
	var (
		all      bool
		category string
	)
	cmd := &cobra.Command{
		Use:   "run [sample...]",
		Short: "Run samples by name, by category or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := a.selectSamples(args, category, all)
			if err != nil {
				return err
			}
			return a.runAll(selected)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "run every sample")
	cmd.Flags().StringVar(&category, "category", "", "run every sample of a category")
	return cmd
}

func (a *app) selectSamples(names []string, category string, all bool) ([]samples.Sample, error) {
	switch {
	case all:
		return a.registry.All(), nil
	case category != "":
		selected := a.registry.InCategory(category)
		if len(selected) == 0 {
			return nil, fmt.Errorf("unknown category: %s", category)
		}
		return selected, nil
	case len(names) == 0:
		return nil, fmt.Errorf("name at least one sample, or use --category or --all")
	}

	selected := make([]samples.Sample, 0, len(names))
	for _, name := range names {
		s, ok := a.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown sample: %s", name)
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// runAll runs every sample, reports failures and returns the first error
// after all of them had their turn.
func (a *app) runAll(selected []samples.Sample) error {
	var firstErr error
	for _, s := range selected {
		if err := a.runOne(s); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := a.report(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (a *app) runOne(s samples.Sample) error {
	a.heading.Fprintf(a.out, "== %s: %s ==\n", s.Name, s.Title)
	a.faint.Fprintln(a.out, s.Description)

	start := time.Now()
	err := samples.RunSample(s, a.env(s))
	elapsed := time.Since(start)

	if err != nil {
		a.failure.Fprintf(a.out, "failed: %v\n", err)
		a.logger.Error().Err(err).Str("sample", s.Name).Dur("duration", elapsed).Msg("sample failed")
		return err
	}
	a.logger.Info().Str("sample", s.Name).Dur("duration", elapsed).Msg("sample finished")
	fmt.Fprintln(a.out)
	return nil
}

// report prints the collected metrics and traces, if enabled.
func (a *app) report() error {
	if a.metrics != nil {
		summary := a.metrics.GetSummary()
		a.heading.Fprintln(a.out, "Metrics")
		fmt.Fprintf(a.out, "runs=%d failures=%d total=%s average=%s\n",
			summary.TotalRuns, summary.Failures, summary.TotalDuration, summary.AverageDuration)
		if err := a.metrics.WriteText(a.out); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	if a.analyzer != nil {
		a.heading.Fprintln(a.out, "Trace")
		fmt.Fprint(a.out, a.analyzer.GenerateReport().RenderText())
	}
	return nil
}

func newVersionCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Info()
			if !asJSON {
				fmt.Fprint(a.out, info.String())
				return nil
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
