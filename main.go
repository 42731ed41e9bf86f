package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/kcz17/traversalplot/chart"
	"github.com/kcz17/traversalplot/config"
	"github.com/kcz17/traversalplot/logging"
	"github.com/kcz17/traversalplot/output"
)

const usageText = `usage: traversalplot [flags] FILE...

Plots request time against worker count for each traversals JSON FILE. Charts
are saved next to each FILE with the extension replaced, e.g. data.json is
saved as data.png, unless --view is set.

INPUT FORMAT
	{"traversals": [{"workers": INT, "request_times": [{"secs": INT, "nanos": INT}, ...]}, ...]}

FLAGS
`

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("traversalplot", pflag.ContinueOnError)
	flags.BoolP("view", "v", false, "display the chart instead of saving it; requires exactly one FILE")
	flags.StringP("config", "c", "", "path to a YAML config file")
	flags.String("format", "", "image format for saved charts: png|svg|pdf|jpg|jpeg|tif|tiff|eps (default png)")
	flags.String("log-driver", "", "logging driver: noop|stdout|influxdb (default stdout)")
	flags.SetOutput(os.Stderr)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flags.PrintDefaults()
	}
	return flags
}

// usageFatal prints err and the usage text, then exits with status 2.
func usageFatal(flags *pflag.FlagSet, err error) {
	fmt.Fprintf(os.Stderr, "traversalplot: %v\n\n", err)
	flags.Usage()
	os.Exit(2)
}

func main() {
	log.SetPrefix("traversalplot: ")
	log.SetFlags(0)

	flags := newFlagSet()
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		// pflag has already printed the error and usage.
		os.Exit(2)
	}
	view, _ := flags.GetBool("view")
	configPath, _ := flags.GetString("config")

	files := flags.Args()
	if err := validateArgs(files, view); err != nil {
		usageFatal(flags, err)
	}

	cfg, err := config.ReadConfig(configPath, flags)
	if err != nil {
		usageFatal(flags, err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	style := styleFor(*cfg.Chart.Width, *cfg.Chart.Height, *cfg.Chart.BoxWidth, *cfg.Chart.Title)
	presenter, err := newPresenter(cfg, style, output.ModeFor(view), logger)
	if err != nil {
		log.Fatalf("error creating presenter: %v", err)
	}
	plotter, err := NewTraversalPlotter(&TraversalPlotterOptions{
		Style:            style,
		Presenter:        presenter,
		Logger:           logger,
		IsSummaryEnabled: *cfg.Summary.Enabled,
		CollectorDriver:  *cfg.Summary.Collector,
		CollectorWindow:  *cfg.Summary.Window,
		Comparison:       *cfg.Summary.Comparison,
	})
	if err != nil {
		log.Fatalf("error creating plotter: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// Restore default signal handling so a second signal kills the
		// process if the run does not stop in time.
		<-ctx.Done()
		stop()
	}()
	err = plotFiles(ctx, plotter, files)
	stop()
	logger.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// plotFiles processes files in order and stops at the first failure or once
// ctx is done.
func plotFiles(ctx context.Context, plotter *TraversalPlotter, files []string) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted before %s: %w", file, err)
		}
		if err := plotter.PlotFile(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(cfg *config.Config) (logging.Logger, error) {
	switch *cfg.Logging.Driver {
	case logging.NoopDriver:
		return logging.NewNoopLogger(), nil
	case logging.StdoutDriver:
		return logging.NewStdoutLogger(), nil
	case logging.InfluxDBDriver:
		return logging.NewInfluxDBLogger(
			*cfg.Logging.InfluxDB.Host,
			*cfg.Logging.InfluxDB.Token,
			*cfg.Logging.InfluxDB.Org,
			*cfg.Logging.InfluxDB.Bucket,
		), nil
	default:
		return nil, fmt.Errorf("newLogger() expected logging driver one of {%s|%s|%s}; got %s",
			logging.NoopDriver, logging.StdoutDriver, logging.InfluxDBDriver, *cfg.Logging.Driver)
	}
}

func newPresenter(cfg *config.Config, style chart.Style, mode output.Mode, logger logging.Logger) (*output.Presenter, error) {
	options := &output.PresenterOptions{
		Mode:   mode,
		Format: *cfg.Output.Format,
		Width:  style.Width,
		Height: style.Height,
	}

	if mode == output.Display {
		switch *cfg.View.Driver {
		case "command":
			viewer, err := output.NewCommandViewer(*cfg.View.Command)
			if err != nil {
				return nil, err
			}
			options.Viewer = viewer
		default:
			options.Viewer = output.NewHTTPViewer(*cfg.View.Addr, logger.LogViewerListening)
		}
	}
	return output.NewPresenter(options)
}
