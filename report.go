package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Reports share one stem per run; each format appends its own extension.
// A failed write is recorded and reported but never blocks sibling formats.

func WriteCSVReport(stem string, header []string, rows [][]string) (string, error) {
	path := stem + ".csv"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	// Header row is always present, even with zero data rows.
	if err := w.Write(header); err != nil {
		f.Close()
		return path, fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return path, fmt.Errorf("writing rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return path, fmt.Errorf("flushing %s: %w", path, err)
	}
	return path, f.Close()
}

func WriteMarkdownReport(stem, content string) (string, error) {
	path := stem + ".md"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return path, fmt.Errorf("creating report dir: %w", err)
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_", " ", "_")
	return replacer.Replace(s)
}

// recordArtifact folds one write attempt into the run summary and logs the
// outcome, keeping the per-format isolation in one place.
func recordArtifact(summary *RunSummary, path string, err error) {
	if err != nil {
		log.Printf("report write failed path=%s err=%v", path, err)
		summary.FailedArtifacts = append(summary.FailedArtifacts, path)
		return
	}
	log.Printf("report written path=%s", path)
	summary.Artifacts = append(summary.Artifacts, path)
}

// --- CSV schemas, fixed column order per report type ---

func postCSVHeader() []string {
	return []string{"subreddit", "title", "score", "num_comments", "url", "is_problem", "problem_summary", "body_snippet"}
}

func postCSVRow(r PostRecord, snippetLen int) []string {
	return []string{
		r.Post.Subreddit,
		r.Post.Title,
		strconv.FormatInt(r.Post.Score, 10),
		strconv.FormatInt(r.Post.NumComments, 10),
		r.Post.URL,
		strconv.FormatBool(r.IsProblem),
		r.Summary,
		r.Post.Snippet(snippetLen),
	}
}

func commentCSVHeader() []string {
	return []string{"video_title", "video_url", "category", "like_count", "summary", "comment_text"}
}

func commentCSVRow(r CommentRecord) []string {
	return []string{
		r.VideoTitle,
		r.VideoURL,
		r.Category,
		strconv.FormatInt(r.LikeCount, 10),
		r.Summary,
		r.CommentText,
	}
}

// --- Markdown assembly ---

// noDataMarkdown is the fixed empty-input report body: a run that fetched
// nothing still produces a well-formed artifact instead of crashing.
func noDataMarkdown(title string) string {
	return fmt.Sprintf("# %s\n\nNo data was available for this run.\n", title)
}

func markdownBucketTable(buckets []Bucket) string {
	var b strings.Builder
	b.WriteString("| Bucket | Videos |\n|:---|---:|\n")
	for _, bucket := range buckets {
		fmt.Fprintf(&b, "| %s | %d |\n", bucket.Label, bucket.Count)
	}
	return b.String()
}
