package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TargetKind discriminates what an analysis run is pointed at. The kind is
// resolved once at the CLI boundary; downstream code never probes for
// whichever subject field happens to be set.
type TargetKind string

const (
	TargetSubreddits TargetKind = "subreddits"
	TargetChannelID  TargetKind = "channel_id"
	TargetChannelURL TargetKind = "channel_url"
	TargetTopic      TargetKind = "topic"
	TargetKeywords   TargetKind = "keywords"
)

// Target is the resolved subject of one analysis run.
type Target struct {
	Kind   TargetKind
	Values []string // subreddit names or keywords
	Value  string   // channel ID, channel URL, or topic
}

func (t Target) String() string {
	if len(t.Values) > 0 {
		return fmt.Sprintf("%s:%s", t.Kind, strings.Join(t.Values, ","))
	}
	return fmt.Sprintf("%s:%s", t.Kind, t.Value)
}

type RedditPost struct {
	Subreddit   string
	Title       string
	SelfText    string
	Score       int64
	NumComments int64
	URL         string
	CreatedUTC  time.Time
}

// Snippet returns the post body truncated for prompting and CSV output.
// The cut backs up to a rune boundary so truncation never leaves a
// partial UTF-8 sequence in the output.
func (p RedditPost) Snippet(maxLen int) string {
	body := strings.TrimSpace(p.SelfText)
	if maxLen <= 0 || len(body) <= maxLen {
		return body
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

type YouTubeVideo struct {
	ID           string
	Title        string
	ChannelID    string
	ChannelTitle string
	PublishedAt  time.Time
	ViewCount    int64
}

func (v YouTubeVideo) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

type YouTubeComment struct {
	VideoID    string
	VideoTitle string
	Text       string
	LikeCount  int64
}

type ChannelStats struct {
	ID          string
	Title       string
	Subscribers int64
}

type SubredditInfo struct {
	Name        string
	Title       string
	Subscribers int64
}

// PostVerdict is one per-post classification from a batched LLM call.
type PostVerdict struct {
	Index     int      `json:"index"`
	IsProblem bool     `json:"is_problem"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags"`
}

// CommentVerdict is one per-comment classification from a batched LLM call.
type CommentVerdict struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// KeywordVerdict is one per-keyword opportunity assessment.
type KeywordVerdict struct {
	Index     int    `json:"index"`
	Verdict   string `json:"verdict"` // "Red Ocean", "Worth Trying", or "Golden Opportunity"
	Reasoning string `json:"reasoning"`
}

// CommentCategories is the fixed classification taxonomy for comments.
var CommentCategories = []string{
	"Positive Feedback",
	"Negative Sentiment",
	"Question",
	"Suggestion",
	"Other",
}

// PostRecord joins a Reddit post with its verdict (when classified).
// Unclassified posts keep the zero verdict and are excluded from
// problem-bound views, not errored.
type PostRecord struct {
	Post       RedditPost
	Classified bool
	IsProblem  bool
	Summary    string
	Tags       []string
}

// CommentRecord joins a YouTube comment with its verdict. One CSV/HTML row.
type CommentRecord struct {
	VideoTitle  string
	VideoURL    string
	CommentText string
	LikeCount   int64
	Category    string
	Summary     string
}

// KeywordRecord joins a keyword's search statistics with its verdict.
type KeywordRecord struct {
	Keyword       string
	AvgViews      int64
	BigChannelPct float64 // share of result videos from channels over 100k subs
	Classified    bool
	Verdict       string
	Reasoning     string
}

// RunSummary is what gets printed to the console, posted to Slack, and
// persisted in the run-history store after each analysis.
type RunSummary struct {
	Command         string
	Target          Target
	ItemsFetched    int
	ItemsClassified int
	Artifacts       []string
	FailedArtifacts []string
	Usage           LLMUsage
	Lines           []string // headline findings, in print order
}

func (s RunSummary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s run for %s: fetched=%d classified=%d\n", s.Command, s.Target, s.ItemsFetched, s.ItemsClassified)
	for _, line := range s.Lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(s.Artifacts) > 0 {
		fmt.Fprintf(&b, "artifacts: %s\n", strings.Join(s.Artifacts, ", "))
	}
	if len(s.FailedArtifacts) > 0 {
		fmt.Fprintf(&b, "failed artifacts: %s\n", strings.Join(s.FailedArtifacts, ", "))
	}
	return b.String()
}
