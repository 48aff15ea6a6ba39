package main

import "fmt"

// Density returns matching/total as a percentage. Zero total is defined as
// zero density, not an error.
func Density(matching, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matching) / float64(total) * 100
}

// FormatDensity renders a density to the two decimal places reports use.
func FormatDensity(d float64) string {
	return fmt.Sprintf("%.2f%%", d)
}

// Bucket is one bar of a distribution histogram. Zero-count buckets are
// kept so the full shape stays visible.
type Bucket struct {
	Label string
	Count int
}

// Distribute assigns each value to the first bucket whose upper boundary it
// does not exceed; boundaries are checked in ascending order and the final
// bucket is open-ended. labels must have len(boundaries)+1 entries; pass
// nil for generated "Under B0" / "B0-B1" / "Over Bn" labels.
func Distribute(values []int64, boundaries []int64, labels []string) []Bucket {
	if labels == nil {
		labels = DefaultBucketLabels(boundaries)
	}
	buckets := make([]Bucket, len(boundaries)+1)
	for i := range buckets {
		buckets[i] = Bucket{Label: labels[i]}
	}
	for _, v := range values {
		placed := false
		for i, b := range boundaries {
			if v <= b {
				buckets[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(boundaries)].Count++
		}
	}
	return buckets
}

func DefaultBucketLabels(boundaries []int64) []string {
	labels := make([]string, 0, len(boundaries)+1)
	for i, b := range boundaries {
		if i == 0 {
			labels = append(labels, fmt.Sprintf("Under %d", b))
			continue
		}
		labels = append(labels, fmt.Sprintf("%d-%d", boundaries[i-1], b))
	}
	if len(boundaries) > 0 {
		labels = append(labels, fmt.Sprintf("Over %d", boundaries[len(boundaries)-1]))
	} else {
		labels = append(labels, "All")
	}
	return labels
}
