package main

import "log"

// MergeVerdicts maps classifier results back onto batch indices. Results
// whose index falls outside [0, n) are dropped rather than failing the
// merge; the dropped count is returned for diagnostics. When the same index
// appears twice the later result wins, matching map semantics.
func MergeVerdicts[T any](n int, results []T, indexOf func(T) int) (map[int]T, int) {
	merged := make(map[int]T, len(results))
	dropped := 0
	for _, r := range results {
		idx := indexOf(r)
		if idx < 0 || idx >= n {
			dropped++
			continue
		}
		merged[idx] = r
	}
	if dropped > 0 {
		log.Printf("merge dropped=%d out-of-range verdicts (batch size %d)", dropped, n)
	}
	return merged, dropped
}
