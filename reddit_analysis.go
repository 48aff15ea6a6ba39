package main

import (
	"fmt"
	"log"
	"regexp"
)

// Stub point for tests; the real function talks to the configured provider.
var classifyPostsFn = ClassifyPosts

type RedditParams struct {
	Subreddits []string
	Limit      int
	TimeFilter string
	OutputStem string // empty means console summary only
	DeepDive   bool
	Context    string
}

// RunRedditAnalysis fetches top posts per subreddit, classifies them in
// bounded batches, and writes the problem-density report. One bad
// subreddit only costs its own contribution; a failed batch only costs its
// own verdicts.
func RunRedditAnalysis(cfg Config, client *RedditClient, params RedditParams) (RunSummary, error) {
	summary := RunSummary{
		Command: "reddit",
		Target:  Target{Kind: TargetSubreddits, Values: params.Subreddits},
	}

	if err := client.Authenticate(); err != nil {
		return summary, err
	}

	var posts []RedditPost
	for _, sub := range params.Subreddits {
		fetched, err := client.FetchTopPosts(sub, params.Limit, params.TimeFilter)
		if err != nil {
			log.Printf("reddit fetch error sub=%s err=%v (continuing with remaining subreddits)", sub, err)
			continue
		}
		posts = append(posts, fetched...)
	}
	summary.ItemsFetched = len(posts)
	log.Printf("reddit fetched total=%d posts from %d subreddits", len(posts), len(params.Subreddits))

	if len(posts) == 0 {
		summary.Lines = append(summary.Lines, "no posts fetched")
		if params.OutputStem != "" {
			path, err := WriteCSVReport(params.OutputStem, postCSVHeader(), nil)
			recordArtifact(&summary, path, err)
			path, err = WriteMarkdownReport(params.OutputStem, noDataMarkdown("Reddit Problem Analysis"))
			recordArtifact(&summary, path, err)
		}
		return summary, nil
	}

	records := make([]PostRecord, len(posts))
	for i, p := range posts {
		records[i] = PostRecord{Post: p}
	}

	classified := 0
	for _, span := range SplitBatches(len(posts), cfg.LLMBatchSize) {
		chunk := posts[span[0]:span[1]]
		texts := make([]string, len(chunk))
		for i, p := range chunk {
			texts[i] = p.Title + " | " + p.Snippet(cfg.SnippetLength)
		}
		batch := NewBatch(texts)

		verdicts, usage, err := classifyPostsFn(cfg, batch)
		summary.Usage.Add(usage)
		if err != nil {
			log.Printf("reddit classify posts=%d-%d err=%v (batch yields zero results)", span[0], span[1], err)
			continue
		}
		merged, _ := MergeVerdicts(batch.Len(), verdicts, func(v PostVerdict) int { return v.Index })
		for idx, v := range merged {
			rec := &records[span[0]+idx]
			rec.Classified = true
			rec.IsProblem = v.IsProblem
			rec.Summary = v.Summary
			rec.Tags = v.Tags
			classified++
		}
	}
	summary.ItemsClassified = classified

	var problems []PostRecord
	for _, r := range records {
		if r.Classified && r.IsProblem {
			problems = append(problems, r)
		}
	}
	density := Density(len(problems), len(records))
	summary.Lines = append(summary.Lines,
		fmt.Sprintf("problem density: %s (%d of %d posts)", FormatDensity(density), len(problems), len(records)))

	if params.OutputStem != "" {
		rows := make([][]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, postCSVRow(r, cfg.SnippetLength))
		}
		path, err := WriteCSVReport(params.OutputStem, postCSVHeader(), rows)
		recordArtifact(&summary, path, err)
	}

	if params.DeepDive {
		if params.Context == "" {
			return summary, fmt.Errorf("-context is required for deep-dive analysis")
		}
		runDeepDive(cfg, problems, params.Context, density, params.OutputStem, &summary)
	}

	return summary, nil
}

var painScoreRe = regexp.MustCompile(painScoreMarker + `: (\d+)/10`)

// runDeepDive is an optional post-hoc text call; failures are logged and
// the run keeps whatever it already produced.
func runDeepDive(cfg Config, problems []PostRecord, contextLabel string, density float64, stem string, summary *RunSummary) {
	if len(problems) == 0 {
		log.Println("reddit deep-dive skipped: no problem posts")
		summary.Lines = append(summary.Lines, "deep-dive skipped: no problem posts")
		return
	}

	snippets := make([]string, len(problems))
	for i, r := range problems {
		snippets[i] = fmt.Sprintf("Title: %s\nBody Snippet: %s", r.Post.Title, r.Post.Snippet(400))
	}

	responseText, usage, err := generateTextFn(cfg, deepDivePrompt(snippets, contextLabel))
	summary.Usage.Add(usage)
	if err != nil {
		log.Printf("reddit deep-dive error: %v (non-fatal)", err)
		return
	}

	score := "N/A"
	if m := painScoreRe.FindStringSubmatch(responseText); m != nil {
		score = m[1] + "/10"
	}
	summary.Lines = append(summary.Lines, "pain point concentration score: "+score)

	content := fmt.Sprintf("# Deep Dive Analysis for: %s\n\n"+
		"## Summary Metrics\n"+
		"- **Problem Density:** %s\n"+
		"- **Pain Point Concentration Score:** %s\n\n"+
		"---\n\n%s\n", contextLabel, FormatDensity(density), score, responseText)

	if stem == "" {
		fmt.Println(content)
		return
	}
	path, err := WriteMarkdownReport(stem, content)
	recordArtifact(summary, path, err)
}
