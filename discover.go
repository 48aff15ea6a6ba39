package main

import (
	"fmt"
	"log"
	"strings"
	"time"
)

const discoverSearchSize = 25

var (
	ageBoundaries = []int64{30, 180, 365}
	ageLabels     = []string{"Under 1 month", "1-6 months", "6-12 months", "Over 1 year"}

	// Boundaries are inclusive upper bounds, so 9999 keeps the "under 10k"
	// bucket strict the way the authority tiers are defined.
	subsBoundaries = []int64{9999, 99999, 999999}
	subsLabels     = []string{"< 10k subs", "10k - 100k subs", "100k - 1M subs", "> 1M subs"}
)

// RunDiscoverAnalysis sizes up a niche: how stale the ranking videos are
// (freshness) and how big the channels behind them are (authority). Both
// LLM conclusions are optional; the distributions stand on their own.
func RunDiscoverAnalysis(cfg Config, client *YouTubeClient, topic, outputStem string) (RunSummary, error) {
	summary := RunSummary{Command: "discover", Target: Target{Kind: TargetTopic, Value: topic}}

	videos, err := client.SearchVideos(topic, discoverSearchSize)
	if err != nil {
		return summary, err
	}
	summary.ItemsFetched = len(videos)
	if len(videos) == 0 {
		summary.Lines = append(summary.Lines, "no videos found for this topic")
		if outputStem != "" {
			path, err := WriteMarkdownReport(outputStem, noDataMarkdown("Niche Discovery: "+topic))
			recordArtifact(&summary, path, err)
		}
		return summary, nil
	}

	now := time.Now().UTC()
	ages := make([]int64, len(videos))
	for i, v := range videos {
		ages[i] = int64(now.Sub(v.PublishedAt).Hours() / 24)
	}
	freshnessBuckets := Distribute(ages, ageBoundaries, ageLabels)
	summary.Lines = append(summary.Lines, "video age distribution:")
	for _, b := range freshnessBuckets {
		summary.Lines = append(summary.Lines, fmt.Sprintf("  %s: %d videos", b.Label, b.Count))
	}

	freshness := runDiscoverTextCall(cfg, freshnessPrompt(len(videos), freshnessBuckets), "freshness", &summary)

	// Channel authority is a sibling sub-analysis: a stats failure costs
	// only this section.
	var authorityBuckets []Bucket
	authority := ""
	channelIDs := uniqueChannelIDs(videos)
	stats, err := client.FetchChannelStats(channelIDs)
	if err != nil {
		log.Printf("discover channel stats error: %v (skipping authority analysis)", err)
		summary.Lines = append(summary.Lines, "channel authority analysis skipped: "+err.Error())
	} else {
		subs := make([]int64, len(videos))
		for i, v := range videos {
			subs[i] = stats[v.ChannelID].Subscribers
		}
		authorityBuckets = Distribute(subs, subsBoundaries, subsLabels)
		summary.Lines = append(summary.Lines, "channel authority distribution (by video count):")
		for _, b := range authorityBuckets {
			summary.Lines = append(summary.Lines, fmt.Sprintf("  %s: %d videos", b.Label, b.Count))
		}
		authority = runDiscoverTextCall(cfg, authorityPrompt(len(videos), authorityBuckets), "authority", &summary)
	}

	if outputStem != "" {
		content := discoverMarkdown(topic, len(videos), freshnessBuckets, freshness, authorityBuckets, authority)
		path, err := WriteMarkdownReport(outputStem, content)
		recordArtifact(&summary, path, err)
	}
	return summary, nil
}

func runDiscoverTextCall(cfg Config, prompt, stage string, summary *RunSummary) string {
	responseText, usage, err := generateTextFn(cfg, prompt)
	summary.Usage.Add(usage)
	if err != nil {
		log.Printf("discover %s analysis error: %v (non-fatal)", stage, err)
		return ""
	}
	return strings.TrimSpace(responseText)
}

func uniqueChannelIDs(videos []YouTubeVideo) []string {
	seen := make(map[string]bool, len(videos))
	var ids []string
	for _, v := range videos {
		if v.ChannelID != "" && !seen[v.ChannelID] {
			seen[v.ChannelID] = true
			ids = append(ids, v.ChannelID)
		}
	}
	return ids
}

// discoverMarkdown fixes the section order: summary metrics, freshness,
// authority.
func discoverMarkdown(topic string, total int, freshnessBuckets []Bucket, freshness string, authorityBuckets []Bucket, authority string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Niche Discovery: %s\n\n", topic)

	b.WriteString("## Summary Metrics\n")
	fmt.Fprintf(&b, "- **Videos analyzed:** %d\n\n", total)

	b.WriteString("## Content Freshness\n\n")
	b.WriteString(markdownBucketTable(freshnessBuckets))
	if freshness != "" {
		b.WriteString("\n")
		b.WriteString(freshness)
		b.WriteString("\n")
	}
	b.WriteString("\n## Channel Authority\n\n")
	if authorityBuckets == nil {
		b.WriteString("Channel authority data was unavailable for this run.\n")
		return b.String()
	}
	b.WriteString(markdownBucketTable(authorityBuckets))
	if authority != "" {
		b.WriteString("\n")
		b.WriteString(authority)
		b.WriteString("\n")
	}
	return b.String()
}
