package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dray-io/daylog/internal/dated"
)

func runLs(args []string) {
	flags := flag.NewFlagSet("ls", flag.ExitOnError)
	configPath := flags.String("config", "", "Path to configuration file")
	dir := flags.String("dir", "", "Override log directory")

	flags.Usage = func() {
		fmt.Println(`Usage: daylogd ls [options]

List the dated log files in the log directory, oldest first.

Options:`)
		flags.PrintDefaults()
	}
	parseFlags(flags, args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Log.Directory = *dir
	}

	if err := listLogs(cfg.Log.Directory, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type logFile struct {
	date    dated.Date
	name    string
	size    int64
	modTime time.Time
}

// listLogs prints one row per dated log file in dir. Files whose names are
// not dates are ignored. A missing directory lists nothing.
func listLogs(dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "No log files in %s\n", dir)
			return nil
		}
		return fmt.Errorf("read log directory %s: %w", dir, err)
	}

	var files []logFile
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		d, err := dated.ParseFileName(e.Name())
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{date: d, name: e.Name(), size: info.Size(), modTime: info.ModTime()})
	}

	if len(files) == 0 {
		fmt.Fprintf(out, "No log files in %s\n", dir)
		return nil
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].date.Before(files[j].date)
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSIZE\tMODIFIED\tFILE")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", f.date, f.size, f.modTime.Format(time.RFC3339), f.name)
	}
	return w.Flush()
}
