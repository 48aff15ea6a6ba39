package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stubClassifyKeywords(t *testing.T, fn func(cfg Config, batch Batch) ([]KeywordVerdict, LLMUsage, error)) {
	t.Helper()
	orig := classifyKeywordsFn
	classifyKeywordsFn = fn
	t.Cleanup(func() { classifyKeywordsFn = orig })
}

// keywordHandler serves a small result page per keyword; "deadword"
// returns no results at all.
func keywordHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") == "deadword" {
				fmt.Fprint(w, `{"items": []}`)
				return
			}
			fmt.Fprint(w, `{"items": [
				{"id": {"videoId": "v1"}, "snippet": {"channelId": "UCbig"}},
				{"id": {"videoId": "v2"}, "snippet": {"channelId": "UCsmall"}}
			]}`)
		case "/videos":
			fmt.Fprint(w, `{"items": [
				{"id": "v1", "snippet": {"channelId": "UCbig"}, "statistics": {"viewCount": "300000"}},
				{"id": "v2", "snippet": {"channelId": "UCsmall"}, "statistics": {"viewCount": "100000"}}
			]}`)
		case "/channels":
			fmt.Fprint(w, `{"items": [
				{"id": "UCbig", "snippet": {"title": "Big"}, "statistics": {"subscriberCount": "500000"}},
				{"id": "UCsmall", "snippet": {"title": "Small"}, "statistics": {"subscriberCount": "800"}}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
}

func TestRunKeywordMatrix(t *testing.T) {
	client := newTestYouTubeClient(t, keywordHandler(t))

	stubClassifyKeywords(t, func(cfg Config, batch Batch) ([]KeywordVerdict, LLMUsage, error) {
		if batch.Len() != 1 {
			t.Errorf("expected a single batch over the surviving keyword, got %d", batch.Len())
		}
		if !strings.Contains(batch.Entries[0].Text, "avg views 200000") {
			t.Errorf("stats line wrong: %q", batch.Entries[0].Text)
		}
		if !strings.Contains(batch.Entries[0].Text, "big-channel share 50%") {
			t.Errorf("competition share wrong: %q", batch.Entries[0].Text)
		}
		return []KeywordVerdict{{Index: 0, Verdict: "Worth Trying", Reasoning: "solid demand, mixed competition"}},
			LLMUsage{InputTokens: 80, OutputTokens: 20}, nil
	})

	stem := filepath.Join(t.TempDir(), "matrix")
	summary, err := RunKeywordMatrix(Config{LLMBatchSize: 50}, client, []string{"espresso", "deadword"}, stem)
	if err != nil {
		t.Fatalf("RunKeywordMatrix failed: %v", err)
	}
	// "deadword" has no results and is skipped, not fatal.
	if summary.ItemsFetched != 1 || summary.ItemsClassified != 1 {
		t.Errorf("counters wrong: %+v", summary)
	}

	md, err := os.ReadFile(stem + ".md")
	if err != nil {
		t.Fatalf("markdown artifact missing: %v", err)
	}
	content := string(md)
	for _, want := range []string{
		"# Keyword Opportunity Matrix",
		"| espresso | 200000 | 50% | Worth Trying | solid demand, mixed competition |",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q:\n%s", want, content)
		}
	}
}

func TestRunKeywordMatrixClassifierFailureKeepsStats(t *testing.T) {
	client := newTestYouTubeClient(t, keywordHandler(t))

	stubClassifyKeywords(t, func(cfg Config, batch Batch) ([]KeywordVerdict, LLMUsage, error) {
		return nil, LLMUsage{InputTokens: 5}, fmt.Errorf("model refused")
	})

	stem := filepath.Join(t.TempDir(), "noverdict")
	summary, err := RunKeywordMatrix(Config{LLMBatchSize: 50}, client, []string{"espresso"}, stem)
	if err != nil {
		t.Fatalf("a classifier failure must not fail the run: %v", err)
	}
	if summary.ItemsFetched != 1 || summary.ItemsClassified != 0 {
		t.Errorf("counters wrong: %+v", summary)
	}

	md, err := os.ReadFile(stem + ".md")
	if err != nil {
		t.Fatalf("markdown artifact missing: %v", err)
	}
	if !strings.Contains(string(md), "| espresso | 200000 | 50% | N/A |") {
		t.Errorf("stats should still render with N/A verdict:\n%s", md)
	}
}

func TestRunKeywordMatrixAllKeywordsFail(t *testing.T) {
	client := newTestYouTubeClient(t, keywordHandler(t))

	stubClassifyKeywords(t, func(cfg Config, batch Batch) ([]KeywordVerdict, LLMUsage, error) {
		t.Fatalf("classifier must not run with no statistics")
		return nil, LLMUsage{}, nil
	})

	stem := filepath.Join(t.TempDir(), "allfail")
	summary, err := RunKeywordMatrix(Config{LLMBatchSize: 50}, client, []string{"deadword"}, stem)
	if err != nil {
		t.Fatalf("expected graceful empty result: %v", err)
	}
	if summary.ItemsFetched != 0 {
		t.Errorf("counters wrong: %+v", summary)
	}
	md, err := os.ReadFile(stem + ".md")
	if err != nil {
		t.Fatalf("placeholder markdown missing: %v", err)
	}
	if !strings.Contains(string(md), "No data was available") {
		t.Errorf("markdown should carry the empty marker: %q", md)
	}
}
