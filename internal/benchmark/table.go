package benchmark

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const promptColWidth = 40

// RenderTable writes the per-prompt comparison table in fixed-width columns,
// one stat row per (prompt, statistic) pair.
func RenderTable(w io.Writer, r *Results) {
	backends := sortedBackends(r)

	fmt.Fprintln(w, "Final Comparison Table")

	header := fmt.Sprintf("%-3s | %-40s | %-8s", "#", "Prompt", "Stat")
	for _, b := range backends {
		header += fmt.Sprintf(" | %-15s", b+" (ms)")
	}
	fmt.Fprintln(w, header)

	sep := divider(len(backends))
	fmt.Fprintln(w, sep)

	statRows := []struct {
		name  string
		value func(Summary) string
	}{
		{"avg", func(s Summary) string { return formatFloat(s.MeanMS, s.Count) }},
		{"median", func(s Summary) string { return formatFloat(s.MedianMS, s.Count) }},
		{"min", func(s Summary) string { return formatInt(s.MinMS, s.Count) }},
		{"max", func(s Summary) string { return formatInt(s.MaxMS, s.Count) }},
	}

	for idx, prompt := range r.Prompts {
		summaries := make([]Summary, len(backends))
		for i, b := range backends {
			summaries[i] = Summarize(r.elapsedFor(b, idx))
		}

		for i, row := range statRows {
			var line string
			if i == 0 {
				line = fmt.Sprintf("%-3d | %-40s | %-8s", idx+1, truncatePrompt(prompt), row.name)
			} else {
				line = fmt.Sprintf("%-3s | %-40s | %-8s", "", "", row.name)
			}
			for _, s := range summaries {
				line += fmt.Sprintf(" | %-15s", row.value(s))
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, sep)
	}
}

// RenderSummary writes overall per-backend statistics, throughput when token
// counts were observed, and the speedup factor between two backends.
func RenderSummary(w io.Writer, r *Results) {
	backends := sortedBackends(r)

	fmt.Fprintln(w, "Overall Model Performance (ms):")
	fmt.Fprintf(w, "%-10s | %-6s | %-10s | %-10s | %-8s | %-8s | %-10s | %-8s\n",
		"Backend", "count", "mean", "median", "min", "max", "stdev", "errors")
	for _, b := range backends {
		s := Summarize(r.elapsedFor(b, -1))
		fmt.Fprintf(w, "%-10s | %-6d | %-10.2f | %-10.2f | %-8d | %-8d | %-10.2f | %-8d\n",
			b, s.Count, s.MeanMS, s.MedianMS, s.MinMS, s.MaxMS, s.StdevMS, r.FailureCount(b))
	}

	for _, b := range backends {
		if tps, ok := r.TokensPerSecond(b); ok {
			fmt.Fprintf(w, "%s throughput: %.2f tokens/sec\n", b, tps)
		}
	}

	if len(backends) == 2 {
		first := Summarize(r.elapsedFor(backends[0], -1))
		second := Summarize(r.elapsedFor(backends[1], -1))
		if first.MeanMS > 0 && second.MeanMS > 0 {
			fmt.Fprintf(w, "Speedup (%s vs %s): %.2fx\n",
				backends[1], backends[0], first.MeanMS/second.MeanMS)
		}
	}
}

func sortedBackends(r *Results) []string {
	backends := make([]string, len(r.Backends))
	copy(backends, r.Backends)
	sort.Strings(backends)
	return backends
}

func divider(backendCount int) string {
	sep := strings.Repeat("-", 3) + "-|-" + strings.Repeat("-", 40) + "-|-" + strings.Repeat("-", 8)
	for i := 0; i < backendCount; i++ {
		sep += "-|-" + strings.Repeat("-", 15)
	}
	return sep
}

func truncatePrompt(prompt string) string {
	if len(prompt) <= promptColWidth {
		return prompt
	}
	return prompt[:promptColWidth-3] + "..."
}

func formatFloat(v float64, count int) string {
	if count == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatInt(v int64, count int) string {
	if count == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", v)
}
