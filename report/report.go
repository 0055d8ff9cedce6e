// Package report summarizes the outcomes of a batch of best-response
// dynamics runs.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/timpalpant/brdynamics"
)

// Stats describes the distribution of an integer-valued quantity.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Min    int
	Max    int
}

func newStats(values []int) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	total := 0
	for _, v := range sorted {
		total += v
	}

	n := len(sorted)
	median := float64(sorted[n/2])
	if n%2 == 0 {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	return Stats{
		Count:  n,
		Mean:   float64(total) / float64(n),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
}

// StatusSummary summarizes the outcomes with one status.
type StatusSummary struct {
	Status     brdynamics.Status
	Count      int
	Fraction   float64
	Iterations Stats
	Movements  Stats
	// Histogram of iteration counts.
	Histogram []Bin
}

// Summary is a summary of a batch of outcomes of nPlayers-player games.
type Summary struct {
	NumPlayers int
	NumGames   int
	ByStatus   []StatusSummary
}

// Summarize computes a summary of the given outcomes, with iteration
// counts binned into at most nBins histogram bins.
func Summarize(outcomes []brdynamics.GameOutcome, nPlayers, nBins int) Summary {
	result := Summary{
		NumPlayers: nPlayers,
		NumGames:   len(outcomes),
	}

	for _, status := range []brdynamics.Status{brdynamics.EquilibriumFound, brdynamics.EquilibriumNotFound} {
		var iterations, movements []int
		for _, o := range outcomes {
			if o.Status == status {
				iterations = append(iterations, o.Iterations)
				movements = append(movements, o.Movements)
			}
		}

		ss := StatusSummary{
			Status:     status,
			Count:      len(iterations),
			Iterations: newStats(iterations),
			Movements:  newStats(movements),
			Histogram:  Histogram(iterations, nBins),
		}
		if len(outcomes) > 0 {
			ss.Fraction = float64(ss.Count) / float64(len(outcomes))
		}

		result.ByStatus = append(result.ByStatus, ss)
	}

	return result
}

// Get returns the summary of outcomes with the given status.
func (s Summary) Get(status brdynamics.Status) StatusSummary {
	for _, ss := range s.ByStatus {
		if ss.Status == status {
			return ss
		}
	}

	return StatusSummary{Status: status}
}

// FractionFound is the fraction of games in which an equilibrium was reached.
func (s Summary) FractionFound() float64 {
	return s.Get(brdynamics.EquilibriumFound).Fraction
}

const maxBarWidth = 50

// WriteText renders the summary with a bar chart per status.
func WriteText(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintf(w, "%d games with %d players\n", s.NumGames, s.NumPlayers); err != nil {
		return err
	}

	for _, ss := range s.ByStatus {
		if _, err := fmt.Fprintf(w, "\n%s: %d (%.1f%%)\n", ss.Status, ss.Count, 100*ss.Fraction); err != nil {
			return err
		}

		if ss.Count == 0 {
			continue
		}

		it, mv := ss.Iterations, ss.Movements
		if _, err := fmt.Fprintf(w, "  iterations: mean=%.2f median=%.1f min=%d max=%d\n",
			it.Mean, it.Median, it.Min, it.Max); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  movements:  mean=%.2f median=%.1f min=%d max=%d\n",
			mv.Mean, mv.Median, mv.Min, mv.Max); err != nil {
			return err
		}

		if err := writeHistogram(w, ss.Histogram); err != nil {
			return err
		}
	}

	return nil
}

func writeHistogram(w io.Writer, bins []Bin) error {
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	for _, b := range bins {
		width := 0
		if maxCount > 0 {
			width = (b.Count*maxBarWidth + maxCount - 1) / maxCount
		}

		label := fmt.Sprintf("[%d, %d]", b.Lo, b.Hi)
		if _, err := fmt.Fprintf(w, "  %14s %6d %s\n", label, b.Count, strings.Repeat("#", width)); err != nil {
			return err
		}
	}

	return nil
}
