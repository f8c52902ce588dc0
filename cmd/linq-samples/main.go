// Command linq-samples lists and runs the sample query catalogue.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/paveg/linq/internal/config"
	"github.com/paveg/linq/internal/dataset"
	"github.com/paveg/linq/internal/monitoring"
	"github.com/paveg/linq/internal/query"
	"github.com/paveg/linq/internal/samples"
	"github.com/paveg/linq/internal/trace"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultDumpDepth = 1

type options struct {
	configPath string
	explain    bool
	metrics    bool
	trace      bool
	depth      int
	noColor    bool
}

// app holds what the commands share once the configuration is loaded.
type app struct {
	opts     options
	cfg      config.Config
	logger   zerolog.Logger
	data     *dataset.DataSource
	registry *samples.Registry
	metrics  *monitoring.MetricsCollector
	analyzer *trace.QueryAnalyzer

	out    io.Writer
	errOut io.Writer

	heading *color.Color
	faint   *color.Color
	failure *color.Color
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "linq-samples",
		Short:         "Run the sample queries of the linq engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "configuration file (.json, .yaml or .yml)")
	flags.BoolVar(&a.opts.explain, "explain", false, "print the plan of every pipeline before its results")
	flags.BoolVar(&a.opts.metrics, "metrics", false, "collect metrics and print them after the run")
	flags.BoolVar(&a.opts.trace, "trace", false, "log every enumeration and print a trace report")
	flags.IntVar(&a.opts.depth, "depth", defaultDumpDepth, "how many nested levels the dumper expands")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newShellCmd(a),
		newBenchCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves the configuration and loads the data set.
func (a *app) setup() error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.opts.trace {
		cfg.TraceEnabled = true
	}
	if a.opts.metrics {
		cfg.MetricsCollection = true
	}
	if a.opts.noColor {
		cfg.Color = false
	}
	config.SetGlobalConfig(cfg)
	a.cfg = cfg

	a.logger, err = trace.NewLogger(cfg, a.errOut)
	if err != nil {
		return err
	}

	a.data, err = dataset.LoadFile(cfg.DatasetPath)
	if err != nil {
		return err
	}
	a.registry = samples.Default()

	a.metrics = nil
	if cfg.MetricsCollection {
		a.metrics = monitoring.EnableGlobalMonitoring()
	} else {
		monitoring.SetGlobalCollector(nil)
	}
	if cfg.TraceEnabled {
		a.analyzer = trace.NewQueryAnalyzer()
	}

	a.heading = a.color(color.FgCyan, color.Bold)
	a.faint = a.color(color.Faint)
	a.failure = a.color(color.FgRed)

	a.logger.Debug().
		Str("config", a.opts.configPath).
		Bool("join_optimization", cfg.JoinOptimization).
		Int("customers", len(a.data.Customers)).
		Int("samples", a.registry.Len()).
		Msg("sample runner ready")
	return nil
}

func (a *app) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if a.cfg.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// env builds the environment for one sample run.
func (a *app) env(s samples.Sample) *samples.Env {
	env := &samples.Env{
		Data:    a.data,
		Out:     samples.NewDumper(a.out, a.opts.depth),
		Explain: a.opts.explain,
	}
	if a.metrics != nil {
		env.Metrics = a.metrics
		env.Observers = append(env.Observers, a.metrics)
	}
	if a.analyzer != nil {
		env.Observers = append(env.Observers, trace.NewTracer(s.Name, a.logger, a.analyzer))
	}
	return env
}

var _ query.Observer = (*monitoring.MetricsCollector)(nil)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
