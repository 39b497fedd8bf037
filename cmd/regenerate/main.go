// Command regenerate is the batch driver around internal/driver.Pass:
// it reads one or more pre-parsed ESTree-shaped AST documents (JSON, as
// produced by an external parser — the Driver never tokenizes or parses
// source text itself, see SPEC_FULL.md's scope boundary), lowers every
// generator function each document contains, and writes the transformed
// AST back out as JSON.
//
// Flag parsing follows the teacher's own cmd/funxy style: no CLI
// framework, just the standard library's flag package.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funxy/internal/cache"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/driver"
	"github.com/funvibe/funxy/internal/hostrpc"
	"github.com/funvibe/funxy/internal/pipeline"
)

func main() {
	var (
		configPath = flag.String("config", "regenerator.yaml", "path to the pass's config file (optional)")
		outPath    = flag.String("o", "", "output path (default stdout)")
		pretty     = flag.Bool("pretty", false, "indent the emitted JSON")
	)
	flag.Parse()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "regenerate: %v\n", err)
		os.Exit(1)
	}

	var store *cache.Store
	if cfg.CachePath != "" {
		store, err = cache.Open(cfg.CachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "regenerate: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	reporter := hostrpc.New(cfg.HostEndpoint)
	defer reporter.Close()

	units := flag.Args()
	if len(units) == 0 {
		units = []string{"-"}
	}

	pass := driver.New(cfg, reporter)
	pl := pipeline.New(
		pipeline.DecodeStage{},
		pipeline.LowerStage{Pass: pass},
		pipeline.EncodeStage{Pretty: *pretty},
	)

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "regenerate: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	var (
		genTotal  int
		cacheHits int
		failed    bool
	)

	for i, path := range units {
		src, err := readUnit(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "regenerate: %s: %v\n", path, err)
			failed = true
			continue
		}

		ctx := &pipeline.PipelineContext{
			FilePath: path,
			Source:   src,
			Config:   cfg,
			Cache:    store,
			Reporter: reporter,
		}
		ctx = pl.Run(ctx)

		if len(ctx.Errors) > 0 {
			for _, e := range ctx.Errors {
				fmt.Fprintf(os.Stderr, "regenerate: %v\n", e)
			}
			failed = true
			continue
		}

		if i > 0 {
			fmt.Fprintln(out, "---")
		}
		out.Write(ctx.Output)
		fmt.Fprintln(out)

		if ctx.CacheHit {
			cacheHits++
		} else {
			genTotal += pass.GeneratorCount()
		}
	}

	summary := fmt.Sprintf("%d generators lowered across %d units, %d cache hits", genTotal, len(units), cacheHits)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		summary = "\033[32m" + summary + "\033[39m"
	}
	fmt.Fprintln(os.Stderr, summary)

	if failed {
		os.Exit(1)
	}
}

func readUnit(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
