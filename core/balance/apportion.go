package balance

import "math"

// Apportion distributes total indivisible units across buckets proportionally
// to weights, never exceeding each bucket's capacity. The exact share per
// bucket is floored (capped by capacity) as the base count; remaining units
// go one at a time to the bucket with the largest outstanding fractional
// share, ties broken by the lowest count/capacity ratio, then by index.
// The result is deterministic for identical inputs.
func Apportion(total int, capacities, weights []int) []int {
	counts := make([]int, len(capacities))
	if total <= 0 || len(capacities) == 0 {
		return counts
	}

	weightSum := 0
	for _, w := range weights {
		if w > 0 {
			weightSum += w
		}
	}

	shares := make([]float64, len(capacities))
	remaining := total
	for i, cap := range capacities {
		if weightSum > 0 && i < len(weights) && weights[i] > 0 {
			shares[i] = float64(total) * float64(weights[i]) / float64(weightSum)
		}
		base := int(math.Floor(shares[i]))
		if base > cap {
			base = cap
		}
		counts[i] = base
		remaining -= base
	}

	for remaining > 0 {
		best := -1
		var bestShare, bestRatio float64
		for i, cap := range capacities {
			if counts[i] >= cap {
				continue
			}
			outstanding := shares[i] - float64(counts[i])
			ratio := float64(counts[i]) / float64(cap)
			if best == -1 || outstanding > bestShare ||
				(outstanding == bestShare && ratio < bestRatio) {
				best = i
				bestShare = outstanding
				bestRatio = ratio
			}
		}
		if best == -1 {
			// every bucket is at capacity
			break
		}
		counts[best]++
		remaining--
	}
	return counts
}
