package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dusk-indust/mergelists/internal/config"
	"github.com/dusk-indust/mergelists/internal/loader"
	"github.com/dusk-indust/mergelists/internal/mcptools"
	"github.com/dusk-indust/mergelists/internal/merge"
	"github.com/dusk-indust/mergelists/internal/record"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ConfigDir string
	Workers   int
	Indent    string
	Verbose   bool
	ServeMCP  bool
	Version   bool
}

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = "usage: mergelists [flags] <filename1> <filename2> ..."

// errUsage is returned when fewer than two input files are given.
var errUsage = errors.New(usage)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("mergelists", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.ConfigDir, "config-dir", ".", "directory containing mergelists.yml")
	fs.IntVar(&flags.Workers, "workers", 1, "number of files read concurrently")
	fs.StringVar(&flags.Indent, "indent", record.DefaultIndent, "indentation of the JSON output")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log file progress and key conflicts to stderr")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(fs, &flags, cfg)

	logger := log.New(io.Discard, "mergelists: ", 0)
	if cfg.Verbose {
		logger.SetOutput(stderr)
	}

	if flags.ServeMCP {
		server := mcptools.NewMergeMCPServer(mcptools.NewMergeService(cfg.Workers), version)
		return mcptools.RunMergeMCPServerStdio(ctx, server)
	}

	paths := fs.Args()
	if len(paths) < 2 {
		return errUsage
	}

	return mergeFiles(ctx, paths, cfg, logger, stdout)
}

// applyFlags overrides config values with flags given explicitly on the
// command line.
func applyFlags(fs *flag.FlagSet, flags *cliFlags, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = max(flags.Workers, 1)
		case "indent":
			cfg.Indent = flags.Indent
		case "verbose":
			cfg.Verbose = flags.Verbose
		}
	})
}

func mergeFiles(ctx context.Context, paths []string, cfg *config.Config, logger *log.Logger, stdout io.Writer) error {
	ld := loader.New(cfg.Workers, func(ev loader.ProgressEvent) {
		logger.Print(loader.FormatProgress(ev))
	})

	lists, err := ld.Load(ctx, paths)
	if err != nil {
		return err
	}

	engine := merge.New()
	engine.OnResolve(func(r merge.Resolution) {
		logger.Printf("num=%d %s: existing %s=%d, incoming %s=%d",
			r.Num, r.Outcome, r.Existing.Kind, r.Existing.Timestamp, r.Incoming.Kind, r.Incoming.Timestamp)
	})
	for _, list := range lists {
		engine.Ingest(list)
	}

	merged := engine.Finalize()
	logger.Printf("merged %d files into %d records", len(paths), len(merged))

	return record.Encode(stdout, merged, cfg.Indent)
}
