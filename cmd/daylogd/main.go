package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dray-io/daylog/internal/config"
	"github.com/dray-io/daylog/internal/logging"
	"github.com/google/uuid"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// Handle version flag before subcommand parsing
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-version") {
		fmt.Printf("daylogd version %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	switch subcommand {
	case "tee":
		runTee(os.Args[2:])
	case "sweep":
		runSweep(os.Args[2:])
	case "ls":
		runLs(os.Args[2:])
	case "version":
		fmt.Printf("daylogd version %s (built %s, commit %s)\n", version, buildTime, gitCommit)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: daylogd <command> [options]

Commands:
  tee         Copy stdin into dated log files, one record per line
  sweep       Run one retention sweep over a log directory
  ls          List dated log files
  version     Print version information

Run 'daylogd <command> --help' for more information on a command.`)
}

// loadConfig reads configPath when set, otherwise DAYLOG_CONFIG or defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

// newLogger builds the operational logger. Every entry carries the id of
// this process run so that runs sharing a directory can be told apart.
func newLogger(cfg *config.Config, command string) *logging.Logger {
	return logging.Configure(cfg.Observability.LogLevel, cfg.Observability.LogFormat, os.Stderr).
		Named("daylogd").
		With(map[string]any{
			"command":  command,
			"instance": uuid.New().String(),
		})
}

// parseFlags parses args and exits on error, the way flag.ExitOnError does.
func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
}
