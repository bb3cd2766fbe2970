// Command gentab generates fixed-point coefficient tables of a piecewise
// second-order polynomial approximating sin(x) over the first quadrant.
//
// Usage:
//
//	gentab [-n name] [-i intbits] [-f fracbits] [-p package] [-o file]
//	gentab -config tables.yaml [-o file]
//
// intbits (sign bit included) plus fracbits must be 8, 16 or 32.
// The Go source is written to standard output unless -o is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gentab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		name     = fs.String("n", "q32", "table name prefix, e.g. q32b16")
		intBits  = fs.Uint("i", 7, "integer bits, including the sign bit")
		fracBits = fs.Uint("f", 25, "fractional bits")
		pkg      = fs.String("p", "sincos", "package of the generated file")
		output   = fs.String("o", "", "output file (default: standard output)")
		config   = fs.String("config", "", "yaml file listing several tables")
		verbose  = fs.Bool("v", false, "log debug messages")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "gentab usage:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	formats := []Format{{Name: *name, IntBits: *intBits, FracBits: *fracBits}}
	if *config != "" {
		cfg, err := LoadConfig(*config)
		if err != nil {
			fmt.Fprintf(stderr, "error: loading config: %v\n", err)
			return 1
		}
		logger.Debug("config loaded", slog.String("file", *config), slog.Int("tables", len(cfg.Tables)))
		formats = cfg.Tables
		if cfg.Package != "" && !set["p"] {
			*pkg = cfg.Package
		}
		if cfg.Output != "" && !set["o"] {
			*output = cfg.Output
		}
	}

	invocation := strings.Join(append([]string{"gentab"}, args...), " ")
	source, err := Generate(*pkg, invocation, formats, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *output == "" {
		if _, err := stdout.Write(source); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*output, source, 0644); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Debug("written", slog.String("file", *output), slog.Int("bytes", len(source)))
	return 0
}
