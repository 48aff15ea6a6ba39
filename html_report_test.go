package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderHTMLReportEscapesContent(t *testing.T) {
	records := []CommentRecord{
		{
			VideoTitle:  "Review <b>2026</b>",
			VideoURL:    "https://www.youtube.com/watch?v=x1",
			CommentText: `<script>alert("xss")</script>`,
			LikeCount:   7,
			Category:    "Negative Sentiment",
			Summary:     "complains about audio & editing",
		},
	}
	page := renderHTMLReport(records)

	if strings.Contains(page, `<script>alert`) {
		t.Fatalf("comment text must be escaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Errorf("expected escaped script tag in page")
	}
	if !strings.Contains(page, "audio &amp; editing") {
		t.Errorf("expected escaped ampersand in summary")
	}
	if !strings.Contains(page, "Review &lt;b&gt;2026&lt;/b&gt;") {
		t.Errorf("expected escaped video title")
	}
}

func TestRenderHTMLReportControls(t *testing.T) {
	page := renderHTMLReport(nil)

	for _, want := range []string{
		`id="keywordFilter"`,
		`id="categoryFilter"`,
		`<option value="">All Categories</option>`,
		`onclick="sortTable(0)"`,
		`onclick="sortTable(4)"`,
		"function filterTable()",
		"function sortTable(",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	for _, category := range CommentCategories {
		if !strings.Contains(page, `<option value="`+category+`">`) {
			t.Errorf("category filter missing option %q", category)
		}
	}
}

func TestRenderHTMLReportSortIsStableAndNumeric(t *testing.T) {
	page := renderHTMLReport(nil)

	// Like count sorts numerically, everything else as lowercased text.
	if !strings.Contains(page, "parseInt(key, 10)") {
		t.Errorf("like-count column should sort numerically")
	}
	// Equal keys fall back to the row's pre-sort position.
	if !strings.Contains(page, "return a.position - b.position;") {
		t.Errorf("sort should break ties on original position")
	}
	// Re-clicking a header toggles the direction.
	if !strings.Contains(page, "sortAscending = !sortAscending") {
		t.Errorf("repeated clicks should toggle sort direction")
	}
}

func TestRenderHTMLReportSelfContained(t *testing.T) {
	page := renderHTMLReport([]CommentRecord{{Category: "Other", Summary: "ok"}})

	for _, forbidden := range []string{"src=\"http", "href=\"http://", "cdn.", "@import"} {
		if strings.Contains(page, forbidden) {
			t.Errorf("page should not reference external assets, found %q", forbidden)
		}
	}
	if !strings.Contains(page, "<style>") || !strings.Contains(page, "<script>") {
		t.Errorf("styles and script must be inlined")
	}
}

func TestWriteHTMLReport(t *testing.T) {
	stem := filepath.Join(t.TempDir(), "nested", "youtube_analysis_results")
	path, err := WriteHTMLReport(stem, []CommentRecord{
		{VideoTitle: "v", VideoURL: "https://www.youtube.com/watch?v=a", Category: "Question", Summary: "asks", CommentText: "?", LikeCount: 1},
	})
	if err != nil {
		t.Fatalf("WriteHTMLReport failed: %v", err)
	}
	if !strings.HasSuffix(path, ".html") {
		t.Errorf("expected .html extension, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Errorf("report should be a full HTML document")
	}
}
