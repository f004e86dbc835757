package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/njreid/compgen/pkg/catalog/gotypes"
	"github.com/njreid/compgen/pkg/descriptor"
	"github.com/njreid/compgen/pkg/discovery"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: compgen <command> [options]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  discover  Load Go packages and print component descriptors as JSON\n")
	fmt.Fprintf(w, "  version   Show version information\n")
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 1
	}

	switch args[0] {
	case "discover":
		return runDiscover(ctx, args[1:], stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "compgen version %s\n", version)
		return 0
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		usage(stderr)
		return 1
	}
}

func runDiscover(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "directory packages are resolved from")
	runtime := fs.String("runtime", defaultRuntime(), "import path of the component runtime (env COMPGEN_RUNTIME)")
	marker := fs.String("marker", gotypes.DefaultMarker, "struct tag key and comment prefix of attributes")
	deps := fs.Bool("deps", false, "also walk imported packages")
	parallel := fs.Int("p", 4, "number of packages walked concurrently")
	compact := fs.Bool("compact", false, "print JSON on a single line")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ds, err := discover(ctx, discoverConfig{
		dir:      *dir,
		patterns: fs.Args(),
		runtime:  *runtime,
		marker:   *marker,
		deps:     *deps,
		parallel: *parallel,
		logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := descriptor.MarshalJSON(ds, !*compact)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

type discoverConfig struct {
	dir      string
	patterns []string
	runtime  string
	marker   string
	deps     bool
	parallel int
	logger   *slog.Logger
}

func discover(ctx context.Context, cfg discoverConfig) ([]*descriptor.Descriptor, error) {
	wk := discovery.WellKnownFor(cfg.runtime, cfg.marker)
	cat, err := gotypes.Load(ctx, gotypes.Config{
		Dir:                 cfg.dir,
		Patterns:            cfg.patterns,
		Marker:              cfg.marker,
		Interfaces:          []string{wk.ComponentInterface},
		IncludeDependencies: cfg.deps,
	})
	if err != nil {
		return nil, err
	}

	d := discovery.New(cat, discovery.Options{
		WellKnown:   wk,
		Parallelism: cfg.parallel,
		Logger:      cfg.logger,
	})
	ds, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}
	for f, missing := range d.Disabled() {
		cfg.logger.Warn("feature unavailable", "feature", string(f), "missing", missing)
	}
	cfg.logger.Debug("discovery finished", "descriptors", len(ds))
	return ds, nil
}

func defaultRuntime() string {
	if v := strings.TrimSpace(os.Getenv("COMPGEN_RUNTIME")); v != "" {
		return v
	}
	return discovery.DefaultRuntimePackage
}
