// enumtmpl generates template rendering code for sealed-interface unions.
// Each variant renders through its own template annotation, and every
// variant gets the render.Template methods dispatching on the union.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"enumtmpl/internal/config"
	"enumtmpl/internal/derive"
	"enumtmpl/internal/generator"
	"enumtmpl/internal/parser"
)

var (
	dir        string
	types      string
	exclude    string
	configFile string
	outputFile string
	buildTags  string
	verbose    bool
	showHelp   bool
)

func init() {
	flag.StringVar(&dir, "dir", ".", "Package directory")
	flag.StringVar(&dir, "d", ".", "Package directory (shorthand)")

	flag.StringVar(&types, "type", "", "Union types to generate (comma-separated)")
	flag.StringVar(&types, "T", "", "Union types to generate (shorthand)")
	flag.StringVar(&exclude, "exclude", "", "Exclude these types (comma-separated)")
	flag.StringVar(&exclude, "X", "", "Exclude these types (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file name (default: <package>_enumtmpl.go)")
	flag.StringVar(&outputFile, "o", "", "Output file name (shorthand)")

	flag.StringVar(&buildTags, "tags", "", "Build tags used to select files (comma-separated)")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `enumtmpl - template rendering for sealed-interface unions

Usage:
    enumtmpl [-type <Union,...>] [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # From a go:generate directive in the package
    //go:generate enumtmpl -type Page

    # Every type carrying //enumtmpl:derive
    enumtmpl -d ./internal/views

    # Custom output file and config
    enumtmpl -type Page,Mail -o views_gen.go -c enumtmpl.yaml

`)
}

func main() {
	if err := run(); err != nil {
		var diags derive.Diagnostics
		if errors.As(err, &diags) {
			for _, d := range diags {
				fmt.Fprintln(os.Stderr, d)
			}
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if showHelp {
		flag.Usage()
		return nil
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Load configuration
	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply CLI overrides
	if types != "" {
		cfg.Options.IncludeTypes = parseCommaSeparated(types)
	}
	if exclude != "" {
		cfg.Options.ExcludeTypes = parseCommaSeparated(exclude)
	}
	if outputFile != "" {
		cfg.Options.Output = outputFile
	}
	if buildTags != "" {
		cfg.Options.BuildTags = append(cfg.Options.BuildTags, parseCommaSeparated(buildTags)...)
	}

	// Parse the package, skipping a previous output
	p := parser.New(
		parser.WithBuildTags(cfg.Options.BuildTags...),
		parser.WithSkipFiles(cfg.Options.Output),
	)
	pkg, err := p.ParseDir(dir)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}
	output := filepath.Join(dir, cfg.OutputName(pkg.Name))
	if cfg.Options.Output == "" {
		// The default name depends on the package name, so the previous
		// output can only be excluded once the package is known.
		p = parser.New(
			parser.WithBuildTags(cfg.Options.BuildTags...),
			parser.WithSkipFiles(filepath.Base(output)),
		)
		if pkg, err = p.ParseDir(dir); err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"package": pkg.Name,
		"files":   len(pkg.Files),
		"types":   len(pkg.Types),
	}).Debug("parsed package")

	var buf bytes.Buffer
	if err := generator.New(cfg, log).Generate(pkg, &buf); err != nil {
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	log.WithField("output", output).Info("generated")

	return nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
