package statistics

import (
	"fmt"
	"math"
	"sort"
)

// SessionResult is the outcome of one complete session, seen from the
// player's side.
type SessionResult struct {
	Seed   int64 // RNG seed for this session (for replay)
	Rounds int   // Rounds actually played
	Total  int   // Final cumulative score
	Wins   int   // Rounds the player won
	Draws  int   // Rounds drawn
	Losses int   // Rounds the opponent won

	// Opponent action frequencies, indexed by rps.Action
	OpponentActions [3]int
}

// Statistics aggregates results across many sessions
type Statistics struct {
	Sessions  int
	SumTotal  float64
	SumTotal2 float64   // Sum of squares for variance calculation
	Values    []float64 // Final totals, kept for median/percentile calculation

	// Round-level ledger
	Rounds int
	Wins   int
	Draws  int
	Losses int

	// Sessions where the player finished at or above zero
	Passed int

	OpponentActions [3]int
}

// Add incorporates a session result
func (s *Statistics) Add(result SessionResult) {
	total := float64(result.Total)
	s.Sessions++
	s.SumTotal += total
	s.SumTotal2 += total * total
	s.Values = append(s.Values, total)

	s.Rounds += result.Rounds
	s.Wins += result.Wins
	s.Draws += result.Draws
	s.Losses += result.Losses

	if result.Total >= 0 {
		s.Passed++
	}
	for i, n := range result.OpponentActions {
		s.OpponentActions[i] += n
	}
}

// Mean returns the mean final total per session
func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumTotal / float64(s.Sessions)
}

// PerRound returns the mean outcome per round, in [-1,1]
func (s *Statistics) PerRound() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumTotal / float64(s.Rounds)
}

// Variance returns the sample variance of the final totals
func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTotal2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

// StdDev returns the sample standard deviation of the final totals
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds the player won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// DrawRate returns the fraction of rounds drawn
func (s *Statistics) DrawRate() float64 {
	return s.rate(s.Draws)
}

// LossRate returns the fraction of rounds the opponent won
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// Median returns the median final total
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// IsLedgerBalanced checks that wins minus losses accounts for every point
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(float64(s.Wins-s.Losses)-s.SumTotal) <= 1e-6
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: wins=%d losses=%d total=%.0f", s.Wins, s.Losses, s.SumTotal)
	}

	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}

	if len(s.Values) != s.Sessions {
		return fmt.Errorf("values array length (%d) does not match sessions count (%d)",
			len(s.Values), s.Sessions)
	}

	if played := s.Wins + s.Draws + s.Losses; played != s.Rounds {
		return fmt.Errorf("outcome counts (%d) do not match rounds (%d)", played, s.Rounds)
	}

	actions := 0
	for _, n := range s.OpponentActions {
		actions += n
	}
	if actions != s.Rounds {
		return fmt.Errorf("opponent action counts (%d) do not match rounds (%d)", actions, s.Rounds)
	}

	if s.Passed > s.Sessions {
		return fmt.Errorf("passed sessions (%d) exceeds sessions (%d)", s.Passed, s.Sessions)
	}

	return nil
}
