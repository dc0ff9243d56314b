package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	rxinggo "github.com/ericlevine/rxinggo"
	"github.com/ericlevine/rxinggo/internal/config"
	"github.com/ericlevine/rxinggo/metrics"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	loader  *config.Loader
	cfg     *config.Config
	logger  *slog.Logger

	registry  *prometheus.Registry
	collector *metrics.Collector
}

func newRootCmd() *cobra.Command {
	a := &app{loader: config.NewLoader()}

	root := &cobra.Command{
		Use:   "barcodescan",
		Short: "Decode and encode barcodes",
		Long: `barcodescan detects and decodes barcodes in image files and renders data
as barcode images.

Examples:
  barcodescan decode --try-harder photo.jpg
  barcodescan encode --format QR_CODE --out hello.png "Hello, rxing!"
  barcodescan formats`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "",
		"config file (default is search in ., $HOME/.config/barcodescan, /etc/barcodescan)")
	pf.BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("metrics-file", "", "write Prometheus metrics to this file when the command finishes")

	a.bind("verbose", root, "verbose")
	a.bind("log_level", root, "log-level")
	a.bind("metrics_file", root, "metrics-file")

	root.AddCommand(a.newDecodeCmd(), a.newEncodeCmd(), a.newFormatsCmd())
	return root
}

func (a *app) bind(key string, cmd *cobra.Command, flag string) {
	if err := a.loader.BindFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loader.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := a.loader.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "file", used)
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewBuildInfoCollector())
	a.collector = metrics.NewCollector(a.registry)
	return nil
}

// run wraps a command so that metrics are written even when it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if werr := a.writeMetrics(); werr != nil && err == nil {
			err = werr
		}
		return err
	}
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.MetricsFile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug("wrote metrics", "file", a.cfg.MetricsFile)
	return nil
}

func (a *app) options() []rxinggo.Option {
	return []rxinggo.Option{
		rxinggo.WithLogger(a.logger),
		rxinggo.WithObserver(a.collector),
	}
}

// loadHintsFile reads a YAML mapping of hint names to values.
func loadHintsFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hints: %w", err)
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse hints %s: %w", path, err)
	}
	return raw, nil
}

// mergeHints layers hint mappings; later layers win.
func mergeHints(layers ...map[string]interface{}) rxinggo.Hints {
	out := rxinggo.Hints{}
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// hintLayers returns the configured hints followed by the --hints file.
func hintLayers(configured map[string]interface{}, file string) ([]map[string]interface{}, error) {
	layers := []map[string]interface{}{configured}
	if file != "" {
		fromFile, err := loadHintsFile(file)
		if err != nil {
			return nil, err
		}
		layers = append(layers, fromFile)
	}
	return layers, nil
}
