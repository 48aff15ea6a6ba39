package main

import (
	"fmt"
	"strings"
)

const communitySearchSize = 10

// RunCommunityDiscovery recommends subreddits for a topic, most subscribed
// first.
func RunCommunityDiscovery(cfg Config, client *RedditClient, topic, outputStem string) (RunSummary, error) {
	summary := RunSummary{Command: "communities", Target: Target{Kind: TargetTopic, Value: topic}}

	if err := client.Authenticate(); err != nil {
		return summary, err
	}
	subs, err := client.SearchSubreddits(topic, communitySearchSize)
	if err != nil {
		return summary, err
	}
	summary.ItemsFetched = len(subs)
	if len(subs) == 0 {
		summary.Lines = append(summary.Lines, "no subreddits found for this topic")
		return summary, nil
	}

	summary.Lines = append(summary.Lines, "recommended subreddits to analyze:")
	for _, sub := range subs {
		summary.Lines = append(summary.Lines, fmt.Sprintf("  %s (Subscribers: %d)", sub.Name, sub.Subscribers))
	}

	if outputStem != "" {
		path, err := WriteMarkdownReport(outputStem, communitiesMarkdown(topic, subs))
		recordArtifact(&summary, path, err)
	}
	return summary, nil
}

func communitiesMarkdown(topic string, subs []SubredditInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Community Discovery: %s\n\n", topic)
	b.WriteString("## Summary Metrics\n")
	fmt.Fprintf(&b, "- **Subreddits found:** %d\n\n", len(subs))
	b.WriteString("## Recommended Subreddits\n\n")
	b.WriteString("| Subreddit | Subscribers | Description |\n|:---|---:|:---|\n")
	for _, sub := range subs {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", sub.Name, sub.Subscribers, escapeMarkdownCell(sub.Title))
	}
	return b.String()
}
