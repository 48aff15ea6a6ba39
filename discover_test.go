package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func discoverHandler(t *testing.T, statsFail bool) http.Handler {
	t.Helper()
	recent := time.Now().UTC().Add(-10 * 24 * time.Hour).Format(time.RFC3339)
	old := time.Now().UTC().Add(-400 * 24 * time.Hour).Format(time.RFC3339)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			fmt.Fprintf(w, `{"items": [
				{"id": {"videoId": "v1"}, "snippet": {"title": "Fresh take", "channelId": "UCa", "publishedAt": %q}},
				{"id": {"videoId": "v2"}, "snippet": {"title": "Old classic", "channelId": "UCb", "publishedAt": %q}}
			]}`, recent, old)
		case "/channels":
			if statsFail {
				http.Error(w, "quota exceeded", http.StatusForbidden)
				return
			}
			fmt.Fprint(w, `{"items": [
				{"id": "UCa", "snippet": {"title": "A"}, "statistics": {"subscriberCount": "5000"}},
				{"id": "UCb", "snippet": {"title": "B"}, "statistics": {"subscriberCount": "2500000"}}
			]}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
}

func TestRunDiscoverAnalysis(t *testing.T) {
	client := newTestYouTubeClient(t, discoverHandler(t, false))

	stubGenerateText(t, func(cfg Config, prompt string) (string, LLMUsage, error) {
		if strings.Contains(prompt, "Freshness Score") {
			return "Freshness Score: 7/10. Stale niche.", LLMUsage{InputTokens: 10}, nil
		}
		if strings.Contains(prompt, "Newbie-Friendliness Score") {
			return "Newbie-Friendliness Score: 4/10.", LLMUsage{InputTokens: 10}, nil
		}
		t.Errorf("unexpected prompt:\n%s", prompt)
		return "", LLMUsage{}, nil
	})

	stem := filepath.Join(t.TempDir(), "niche")
	summary, err := RunDiscoverAnalysis(Config{}, client, "home espresso", stem)
	if err != nil {
		t.Fatalf("RunDiscoverAnalysis failed: %v", err)
	}
	if summary.ItemsFetched != 2 {
		t.Errorf("expected 2 videos, got %d", summary.ItemsFetched)
	}

	md, err := os.ReadFile(stem + ".md")
	if err != nil {
		t.Fatalf("markdown artifact missing: %v", err)
	}
	content := string(md)
	for _, want := range []string{
		"# Niche Discovery: home espresso",
		"## Content Freshness",
		"| Under 1 month | 1 |",
		"| Over 1 year | 1 |",
		"Freshness Score: 7/10",
		"## Channel Authority",
		"| < 10k subs | 1 |",
		"| > 1M subs | 1 |",
		"Newbie-Friendliness Score: 4/10",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q:\n%s", want, content)
		}
	}
}

func TestRunDiscoverAnalysisStatsFailureSkipsAuthorityOnly(t *testing.T) {
	client := newTestYouTubeClient(t, discoverHandler(t, true))

	stubGenerateText(t, func(cfg Config, prompt string) (string, LLMUsage, error) {
		if strings.Contains(prompt, "Newbie-Friendliness") {
			t.Errorf("authority call should be skipped when stats fail")
		}
		return "Freshness Score: 9/10.", LLMUsage{}, nil
	})

	stem := filepath.Join(t.TempDir(), "partial")
	summary, err := RunDiscoverAnalysis(Config{}, client, "topic", stem)
	if err != nil {
		t.Fatalf("a stats failure must not fail the run: %v", err)
	}

	skipped := false
	for _, line := range summary.Lines {
		if strings.Contains(line, "authority analysis skipped") {
			skipped = true
		}
	}
	if !skipped {
		t.Errorf("expected an authority-skipped line: %v", summary.Lines)
	}

	md, err := os.ReadFile(stem + ".md")
	if err != nil {
		t.Fatalf("markdown artifact missing: %v", err)
	}
	if !strings.Contains(string(md), "Channel authority data was unavailable") {
		t.Errorf("markdown should note the missing authority section:\n%s", md)
	}
	if !strings.Contains(string(md), "Freshness Score: 9/10") {
		t.Errorf("freshness section should still render:\n%s", md)
	}
}

func TestRunDiscoverAnalysisNoResults(t *testing.T) {
	client := newTestYouTubeClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	stubGenerateText(t, func(cfg Config, prompt string) (string, LLMUsage, error) {
		t.Fatalf("no LLM call expected without videos")
		return "", LLMUsage{}, nil
	})

	stem := filepath.Join(t.TempDir(), "empty")
	summary, err := RunDiscoverAnalysis(Config{}, client, "nonexistent topic", stem)
	if err != nil {
		t.Fatalf("empty search should not be an error: %v", err)
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

func TestUniqueChannelIDs(t *testing.T) {
	videos := []YouTubeVideo{
		{ChannelID: "UCa"}, {ChannelID: "UCb"}, {ChannelID: "UCa"}, {ChannelID: ""},
	}
	ids := uniqueChannelIDs(videos)
	if len(ids) != 2 || ids[0] != "UCa" || ids[1] != "UCb" {
		t.Errorf("uniqueChannelIDs = %v", ids)
	}
}
