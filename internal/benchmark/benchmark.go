package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxBodyBytes    = 2 << 20 // 2 MiB
	previewMaxChars = 80
)

// DefaultPrompts is the prompt list used when no prompts file is supplied.
var DefaultPrompts = []string{
	"What is the capital of France?",
	"List three countries in Europe and their capitals.",
	"Explain the process of photosynthesis in a few sentences.",
	"Compare and contrast classical and quantum computing.",
	"Write a short story involving a robot, a dragon, and time travel.",
}

// Target is one chat route under measurement.
type Target struct {
	Name string
	URL  string
}

// Sample records one timed benchmark call.
type Sample struct {
	Backend          string    `json:"backend"`
	PromptIndex      int       `json:"prompt_index"`
	Prompt           string    `json:"prompt"`
	RunIndex         int       `json:"run_index"`
	ElapsedMS        int64     `json:"elapsed_ms"`
	StatusCode       int       `json:"status_code"`
	CompletionTokens int       `json:"completion_tokens,omitempty"`
	Preview          string    `json:"preview,omitempty"`
	Error            string    `json:"error,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Results holds every raw sample from one benchmark run.
type Results struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Runs      int       `json:"runs_per_prompt"`
	Prompts   []string  `json:"prompts"`
	Backends  []string  `json:"backends"`
	Samples   []Sample  `json:"samples"`
}

// Options configures a benchmark harness.
type Options struct {
	Targets []Target
	Prompts []string
	Runs    int
	Timeout time.Duration
}

// Harness drives the benchmark. Calls are strictly sequential so that
// concurrent requests cannot skew the latency measurements.
type Harness struct {
	client  *http.Client
	targets []Target
	prompts []string
	runs    int
}

// New creates a benchmark harness.
func New(opts Options) (*Harness, error) {
	if len(opts.Targets) == 0 {
		return nil, fmt.Errorf("at least one target is required")
	}
	if len(opts.Prompts) == 0 {
		return nil, fmt.Errorf("at least one prompt is required")
	}
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("runs must be > 0")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}

	return &Harness{
		client:  &http.Client{Timeout: opts.Timeout},
		targets: opts.Targets,
		prompts: opts.Prompts,
		runs:    opts.Runs,
	}, nil
}

// Run executes every (prompt, run, target) call in order and collects one
// sample per call. A failed call still produces a sample carrying the error.
func (h *Harness) Run(ctx context.Context) (*Results, error) {
	results := &Results{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Runs:      h.runs,
		Prompts:   h.prompts,
	}
	for _, target := range h.targets {
		results.Backends = append(results.Backends, target.Name)
	}

	for promptIdx, prompt := range h.prompts {
		log.Printf("Prompt %d: %q", promptIdx+1, prompt)

		for run := 0; run < h.runs; run++ {
			for _, target := range h.targets {
				if err := ctx.Err(); err != nil {
					return results, err
				}

				sample := h.callOnce(ctx, target, promptIdx, prompt, run)
				results.Samples = append(results.Samples, sample)

				if sample.Error != "" {
					log.Printf("  %s run %d failed after %dms: %s", target.Name, run+1, sample.ElapsedMS, sample.Error)
				} else {
					log.Printf("  %s run %d took %dms", target.Name, run+1, sample.ElapsedMS)
				}
			}
		}
	}

	return results, nil
}

func (h *Harness) callOnce(ctx context.Context, target Target, promptIdx int, prompt string, run int) Sample {
	start := time.Now()
	sample := Sample{
		Backend:     target.Name,
		PromptIndex: promptIdx,
		Prompt:      prompt,
		RunIndex:    run,
		Timestamp:   start,
	}

	payload, err := json.Marshal(map[string]string{"message": prompt})
	if err != nil {
		sample.ElapsedMS = time.Since(start).Milliseconds()
		sample.Error = fmt.Sprintf("marshal payload: %v", err)
		return sample
	}

	req, err := http.NewRequestWithContext(ctx, "POST", target.URL, bytes.NewReader(payload))
	if err != nil {
		sample.ElapsedMS = time.Since(start).Milliseconds()
		sample.Error = fmt.Sprintf("build request: %v", err)
		return sample
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		sample.ElapsedMS = time.Since(start).Milliseconds()
		sample.Error = err.Error()
		return sample
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	sample.ElapsedMS = time.Since(start).Milliseconds()
	sample.StatusCode = resp.StatusCode
	if err != nil {
		sample.Error = fmt.Sprintf("read response body: %v", err)
		return sample
	}

	sample.Preview = preview(string(body), previewMaxChars)
	if resp.StatusCode != http.StatusOK {
		sample.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		return sample
	}

	if v := resp.Header.Get("X-Completion-Tokens"); v != "" {
		if tokens, err := strconv.Atoi(v); err == nil {
			sample.CompletionTokens = tokens
		}
	}

	return sample
}

// preview collapses whitespace and truncates to maxChars.
func preview(s string, maxChars int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxChars {
		return s
	}
	return s[:maxChars] + "..."
}
