package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/contractgen/artifact"
	"github.com/wippyai/contractgen/codec"
	"github.com/wippyai/contractgen/gen"
	"github.com/wippyai/contractgen/schema"
)

func main() {
	var (
		defsFile    = flag.String("defs", "", "Path to YAML type definitions")
		outFile     = flag.String("o", "", "Output wasm file (omit to print the generated types)")
		baseModule  = flag.String("module", "", "Module to embed the contract section into (default: empty module)")
		maxDepth    = flag.Int("max-depth", 0, "Maximum type nesting depth (default 32)")
		inspectFile = flag.String("inspect", "", "Print the contract types embedded in a wasm file")
		asJSON      = flag.Bool("json", false, "Print types as JSON")
		interactive = flag.Bool("i", false, "Browse inspected types in a TUI")
		watch       = flag.Bool("watch", false, "Regenerate whenever the definitions file changes")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *defsFile == "" && *inspectFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: specgen -defs <types.yaml> [-o out.wasm] [-module base.wasm] [-max-depth n] [-json] [-watch] [-v]")
		fmt.Fprintln(os.Stderr, "       specgen -inspect <file.wasm> [-json]")
		fmt.Fprintln(os.Stderr, "       specgen -inspect <file.wasm> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		gen.SetLogger(logger.Named("gen"))
		codec.SetLogger(logger.Named("codec"))
		artifact.SetLogger(logger.Named("artifact"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := generateConfig{
		defsFile:   *defsFile,
		outFile:    *outFile,
		baseModule: *baseModule,
		maxDepth:   *maxDepth,
		json:       *asJSON,
	}

	var err error
	switch {
	case *inspectFile != "" && *interactive:
		err = runInteractive(*inspectFile)
	case *inspectFile != "":
		err = inspect(ctx, os.Stdout, *inspectFile, *asJSON)
	case *watch:
		err = watchDefs(ctx, os.Stdout, cfg, watchDebounce)
	default:
		err = generate(os.Stdout, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type generateConfig struct {
	defsFile   string
	outFile    string
	baseModule string
	maxDepth   int
	json       bool
}

func generate(w io.Writer, cfg generateConfig) error {
	defs, err := gen.LoadDefs(cfg.defsFile)
	if err != nil {
		return err
	}

	var opts []gen.Option
	if cfg.maxDepth > 0 {
		opts = append(opts, gen.WithMaxDepth(cfg.maxDepth))
	}
	out, err := gen.New(opts...).Generate(defs)
	if err != nil {
		return err
	}

	if cfg.outFile == "" {
		return printEntries(w, out.Entries, cfg.json)
	}

	module := artifact.NewModule()
	if cfg.baseModule != "" {
		if module, err = os.ReadFile(cfg.baseModule); err != nil {
			return fmt.Errorf("read module: %w", err)
		}
	}
	module, err = artifact.Embed(module, out.Artifacts)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if err := os.WriteFile(cfg.outFile, module, 0o644); err != nil {
		return fmt.Errorf("write module: %w", err)
	}

	fmt.Fprintf(w, "Wrote %s: %d types, %d artifacts\n", cfg.outFile, len(out.Entries), len(out.Artifacts))
	return nil
}

func inspect(ctx context.Context, w io.Writer, file string, asJSON bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	c, err := artifact.Extract(ctx, data)
	if err != nil {
		return err
	}
	return printEntries(w, c.Entries, asJSON)
}

func printEntries(w io.Writer, entries []*schema.Entry, asJSON bool) error {
	if asJSON {
		data, err := schema.MarshalJSON(entries)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	for _, e := range entries {
		if _, err := io.WriteString(w, describe(e)); err != nil {
			return err
		}
	}
	return nil
}

// describe renders an entry as a short declaration block.
func describe(e *schema.Entry) string {
	var b strings.Builder
	switch {
	case e.Struct != nil:
		fmt.Fprintf(&b, "struct %s (%s)\n", e.Name(), schema.ArtifactName(e.Name()))
		for _, f := range e.Struct.Fields {
			fmt.Fprintf(&b, "  %s: %s\n", f.Name, f.Type)
		}
	case e.Union != nil:
		fmt.Fprintf(&b, "union %s (%s)\n", e.Name(), schema.ArtifactName(e.Name()))
		for _, c := range e.Union.Cases {
			if c.Payload != nil {
				fmt.Fprintf(&b, "  %s(%s)\n", c.Name, *c.Payload)
			} else {
				fmt.Fprintf(&b, "  %s\n", c.Name)
			}
		}
	}
	return b.String()
}
