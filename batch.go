package main

import (
	"fmt"
	"strings"
)

// BatchEntry pairs one item's prompt text with its assigned index. The
// batcher returns these pairs instead of writing an index back onto the
// caller's item, so caller-owned values are never mutated.
type BatchEntry struct {
	Index int
	Text  string
}

// Batch is an ordered set of entries for a single classification call.
// Invariant: Entries[i].Index == i.
type Batch struct {
	Entries []BatchEntry
}

// NewBatch assigns dense zero-based indices in input order. An empty input
// yields an empty batch; callers must skip the classifier for those.
func NewBatch(texts []string) Batch {
	entries := make([]BatchEntry, len(texts))
	for i, text := range texts {
		entries[i] = BatchEntry{Index: i, Text: text}
	}
	return Batch{Entries: entries}
}

func (b Batch) Len() int { return len(b.Entries) }

// Payload renders the batch as numbered lines for embedding in a prompt.
// The separator is placed on its own line between entries; callers pick one
// unlikely to occur in user content (the prompts here use "---").
func (b Batch) Payload(separator string) string {
	var sb strings.Builder
	for i, entry := range b.Entries {
		if i > 0 && separator != "" {
			sb.WriteString(separator)
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d: %q\n", entry.Index, entry.Text)
	}
	return sb.String()
}

// SplitBatches slices items into chunks of at most size, preserving order.
// Indices restart at zero inside each chunk; the caller tracks the chunk
// offset to map verdicts back to the original slice.
func SplitBatches(n, size int) [][2]int {
	if size < 1 {
		size = 1
	}
	var spans [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, [2]int{start, end})
	}
	return spans
}
