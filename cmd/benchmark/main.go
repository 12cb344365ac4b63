// Benchmark driver comparing round-trip latency of the two chat routes.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/modelbridge/model-bridge/internal/benchmark"
)

const (
	defaultOllamaURL = "http://localhost:9999/chat/ollama"
	defaultRunnerURL = "http://localhost:9999/chat/runner"
	defaultRuns      = 5
	defaultTimeout   = 60 * time.Second
)

type cliConfig struct {
	ollamaURL   string
	runnerURL   string
	runs        int
	timeout     time.Duration
	promptsFile string
	outPath     string
}

func main() {
	log.SetFlags(0)

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("error: %v", err)
	}
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)

	fs.StringVar(&cfg.ollamaURL, "ollama-url", defaultOllamaURL, "Ollama chat route")
	fs.StringVar(&cfg.runnerURL, "runner-url", defaultRunnerURL, "Model runner chat route")
	fs.IntVar(&cfg.runs, "runs", defaultRuns, "Runs per prompt per backend")
	fs.DurationVar(&cfg.timeout, "timeout", defaultTimeout, "Per-request timeout (e.g. 30s, 2m)")
	fs.StringVar(&cfg.promptsFile, "prompts", "", "Prompt source file (one prompt per line); default is the built-in prompt list")
	fs.StringVar(&cfg.outPath, "out", "", "Results file path; default model_comparison_<timestamp>.json")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if cfg.runs <= 0 {
		return cliConfig{}, fmt.Errorf("-runs must be > 0")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg cliConfig) error {
	prompts := benchmark.DefaultPrompts
	if cfg.promptsFile != "" {
		var err error
		prompts, err = readPrompts(cfg.promptsFile)
		if err != nil {
			return err
		}
	}

	harness, err := benchmark.New(benchmark.Options{
		Targets: []benchmark.Target{
			// The runner goes first on every run, keeping the
			// measurement order of the original comparison.
			{Name: "runner", URL: cfg.runnerURL},
			{Name: "ollama", URL: cfg.ollamaURL},
		},
		Prompts: prompts,
		Runs:    cfg.runs,
		Timeout: cfg.timeout,
	})
	if err != nil {
		return err
	}

	log.Println("Starting model comparison benchmark")
	log.Printf("Each prompt will be run %d times per backend", cfg.runs)
	log.Println(strings.Repeat("=", 60))

	results, err := harness.Run(ctx)
	if err != nil {
		return err
	}

	benchmark.RenderTable(os.Stdout, results)
	benchmark.RenderSummary(os.Stdout, results)

	outPath := cfg.outPath
	if outPath == "" {
		outPath = benchmark.DefaultOutputPath(time.Now())
	}
	if err := benchmark.WriteResults(outPath, results); err != nil {
		return err
	}
	log.Printf("Results saved to %s", outPath)

	return nil
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompts file: %w", err)
	}
	defer f.Close()

	var prompts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prompts = append(prompts, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read prompts file: %w", err)
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("prompts file %s contains no prompts", path)
	}

	return prompts, nil
}
