// Package main is the entry point for the textcutter command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/textcutter/internal/app"
	"github.com/dshills/textcutter/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	docPath    string
	selection  string
	command    string
	scriptPath string
	outPath    string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	cfg, err := config.Load(config.WithFile(opts.configPath), config.WithEnv(true))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: stderr,
		Prefix: "textcutter",
	})
	application := app.New(cfg, app.WithLogger(logger), app.WithOutput(stdout))

	if err := application.Open(opts.docPath); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.selection != "" {
		if err := application.Select(splitIDs(opts.selection)...); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	failed := false
	if opts.command != "" {
		res := application.Run(ctx, opts.command)
		fmt.Fprintln(stdout, res.String())
		failed = res.IsError()
	}
	if opts.scriptPath != "" {
		if err := application.RunScript(ctx, opts.scriptPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			failed = true
		}
	}

	switch opts.outPath {
	case "":
	case "-":
		if err := application.WriteTo(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	default:
		if err := application.Save(opts.outPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	application.LogSummary()

	if failed {
		return 2
	}
	return 0
}

// parseFlags returns done when the process should exit with code.
func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	fs := flag.NewFlagSet("textcutter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var showVersion bool
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.docPath, "doc", "", "Document to operate on (YAML)")
	fs.StringVar(&opts.selection, "select", "", "Comma-separated node ids to select before running")
	fs.StringVar(&opts.command, "command", "", "Command to run: split-lines, split-words, join, join-space, join-newline, strip-bullets")
	fs.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the document")
	fs.StringVar(&opts.outPath, "out", "", "Where to write the resulting document (- for stdout)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "textcutter - split, join and clean up styled text layers\n\n")
		fmt.Fprintf(stderr, "Usage: textcutter -doc FILE [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  textcutter -doc card.yaml -select title -command split-lines -out -\n")
		fmt.Fprintf(stderr, "  textcutter -doc card.yaml -script batch.lua -out card.yaml\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 1, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "textcutter %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		return opts, 1, true
	}

	if opts.docPath == "" {
		fmt.Fprintf(stderr, "Error: -doc is required\n")
		fs.Usage()
		return opts, 1, true
	}
	if opts.command == "" && opts.scriptPath == "" {
		fmt.Fprintf(stderr, "Error: one of -command or -script is required\n")
		return opts, 1, true
	}

	return opts, 0, false
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
