package stats

import "math"

// ToPercent splits totals into integer percentages that sum to exactly 100 in
// the common case. Every slot but the last is rounded independently; the last
// absorbs the remainder while the previous slots sum to something in (0, 100),
// and is rounded like the others otherwise so it can never go negative or
// push the total past 100. Input order is preserved.
func ToPercent(totals []float64) []int {
	out := make([]int, len(totals))
	if len(totals) == 0 {
		return out
	}
	var sum float64
	for _, t := range totals {
		sum += clampNonNegative(t)
	}

	share := func(v float64) int {
		return int(math.Round(SafeDivide(clampNonNegative(v), sum) * 100))
	}

	running := 0
	last := len(totals) - 1
	for i := 0; i < last; i++ {
		out[i] = share(totals[i])
		running += out[i]
	}
	if running > 0 && running < 100 {
		out[last] = 100 - running
	} else {
		out[last] = share(totals[last])
	}
	return out
}

// ToHours distributes totalHours across categories by percentage, in half-hour
// units, with the same last-slot remainder rule as ToPercent. If rounding
// still over-allocates, the excess is taken from the largest slot, then the
// next largest, until the sum no longer exceeds totalHours.
func ToHours(percents []int, totalHours float64) []float64 {
	out := make([]float64, len(percents))
	if len(percents) == 0 {
		return out
	}
	totalHours = clampNonNegative(totalHours)

	share := func(p int) float64 {
		if p <= 0 {
			return 0
		}
		return roundHalf(float64(p) / 100 * totalHours)
	}

	var running float64
	last := len(percents) - 1
	for i := 0; i < last; i++ {
		out[i] = share(percents[i])
		running += out[i]
	}
	if running > 0 && running < totalHours {
		out[last] = totalHours - running
	} else {
		out[last] = share(percents[last])
	}

	var allocated float64
	for _, h := range out {
		allocated += h
	}
	for excess := allocated - totalHours; excess > 1e-9; {
		maxIdx := largest(out)
		if out[maxIdx] <= 0 {
			break
		}
		d := min(excess, out[maxIdx])
		out[maxIdx] -= d
		excess -= d
	}
	return out
}

// largest returns the index of the first maximal value.
func largest(xs []float64) int {
	idx := 0
	for i, x := range xs {
		if x > xs[idx] {
			idx = i
		}
	}
	return idx
}
