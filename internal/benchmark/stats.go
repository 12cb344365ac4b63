package benchmark

import (
	"math"
	"sort"
)

// Summary aggregates elapsed-time samples, in milliseconds.
type Summary struct {
	Count    int     `json:"count"`
	TotalMS  int64   `json:"total_ms"`
	MinMS    int64   `json:"min_ms"`
	MaxMS    int64   `json:"max_ms"`
	MeanMS   float64 `json:"avg_ms"`
	MedianMS float64 `json:"median_ms"`
	StdevMS  float64 `json:"stdev_ms"`
}

// Summarize computes mean, median, min, max and sample standard deviation.
// Stdev is zero when fewer than two samples exist.
func Summarize(elapsed []int64) Summary {
	if len(elapsed) == 0 {
		return Summary{}
	}

	sorted := make([]int64, len(elapsed))
	copy(sorted, elapsed)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total int64
	for _, v := range sorted {
		total += v
	}

	n := len(sorted)
	mean := float64(total) / float64(n)

	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	var stdev float64
	if n > 1 {
		var sumSq float64
		for _, v := range sorted {
			d := float64(v) - mean
			sumSq += d * d
		}
		stdev = math.Sqrt(sumSq / float64(n-1))
	}

	return Summary{
		Count:    n,
		TotalMS:  total,
		MinMS:    sorted[0],
		MaxMS:    sorted[n-1],
		MeanMS:   mean,
		MedianMS: median,
		StdevMS:  stdev,
	}
}

// elapsedFor returns the elapsed times of successful samples for a backend,
// restricted to one prompt when promptIdx >= 0.
func (r *Results) elapsedFor(backend string, promptIdx int) []int64 {
	var out []int64
	for _, s := range r.Samples {
		if s.Backend != backend || s.Error != "" {
			continue
		}
		if promptIdx >= 0 && s.PromptIndex != promptIdx {
			continue
		}
		out = append(out, s.ElapsedMS)
	}
	return out
}

// FailureCount reports how many calls against a backend failed.
func (r *Results) FailureCount(backend string) int {
	var n int
	for _, s := range r.Samples {
		if s.Backend == backend && s.Error != "" {
			n++
		}
	}
	return n
}

// TokensPerSecond aggregates throughput over every successful sample that
// carried a completion-token count. The second return value is false when no
// sample reported tokens.
func (r *Results) TokensPerSecond(backend string) (float64, bool) {
	var tokens int64
	var elapsedMS int64
	for _, s := range r.Samples {
		if s.Backend != backend || s.Error != "" || s.CompletionTokens == 0 {
			continue
		}
		tokens += int64(s.CompletionTokens)
		elapsedMS += s.ElapsedMS
	}
	if tokens == 0 || elapsedMS == 0 {
		return 0, false
	}
	return float64(tokens) / (float64(elapsedMS) / 1000.0), true
}
