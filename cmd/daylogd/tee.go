package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dray-io/daylog/internal/metrics"
	"github.com/dray-io/daylog/pkg/daylog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// maxLineBytes bounds a single stdin record.
const maxLineBytes = 1024 * 1024

func runTee(args []string) {
	fs := flag.NewFlagSet("tee", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	dir := fs.String("dir", "", "Override log directory")
	label := fs.String("label", daylog.LabelInfo, "Label for every record")
	useUTC := fs.Bool("utc", false, "Use UTC for timestamps and file dates")
	retention := fs.Duration("retention", -1, "Override retention threshold (e.g., 720h); 0 disables")
	metricsAddr := fs.String("metrics-addr", "", "Override metrics endpoint address (e.g., :9100)")
	quiet := fs.Bool("quiet", false, "Do not echo records to stdout")

	fs.Usage = func() {
		fmt.Println(`Usage: daylogd tee [options]

Read stdin line by line and append every line to today's log file.
Lines are echoed to stdout unless -quiet is given. Stops at end of input
or on SIGINT/SIGTERM.

Options:`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI overrides
	if *dir != "" {
		cfg.Log.Directory = *dir
	}
	if *useUTC {
		cfg.Log.UseUTC = true
	}
	if *retention >= 0 {
		cfg.Log.DeleteOlderThan = *retention
	}
	if *metricsAddr != "" {
		cfg.Observability.MetricsAddr = *metricsAddr
	}

	logger := newLogger(cfg, "tee")

	var set *metrics.Set
	if cfg.Observability.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		set = metrics.NewSet(reg)

		srv := metrics.NewServerWithRegistry(cfg.Observability.MetricsAddr, reg).WithLogger(logger)
		if err := srv.Start(); err != nil {
			logger.Errorf("failed to start metrics server", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer srv.Close()
		logger.Infof("metrics server listening", map[string]any{"addr": srv.Addr()})
	}

	l, err := daylog.NewFromConfig(cfg, set, logger)
	if err != nil {
		logger.Errorf("failed to create logger", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Infof("writing dated logs", map[string]any{
		"dir":             l.Directory(),
		"deleteOlderThan": cfg.Log.DeleteOlderThan.String(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var echo io.Writer = os.Stdout
	if *quiet {
		echo = nil
	}

	start := time.Now()
	n, teeErr := teeLines(ctx, l, *label, os.Stdin, echo)
	if err := l.Close(); err != nil {
		logger.Errorf("failed to close logger", map[string]any{"error": err.Error()})
	}
	if teeErr != nil {
		logger.Errorf("tee failed", map[string]any{"error": teeErr.Error(), "records": n})
		os.Exit(1)
	}
	logger.Infof("tee complete", map[string]any{
		"records":  n,
		"duration": time.Since(start).String(),
	})
}

// teeLines logs every line of in under label until in is exhausted or ctx
// is cancelled, echoing each line to echo when it is non-nil. It returns the
// number of records written.
func teeLines(ctx context.Context, l *daylog.Logger, label string, in io.Reader, echo io.Writer) (int, error) {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, nil
		case text, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return n, fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return n, nil
			}
			if err := l.Log(label, text); err != nil {
				return n, err
			}
			n++
			if echo != nil {
				fmt.Fprintln(echo, text)
			}
		}
	}
}
