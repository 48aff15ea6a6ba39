package main

import (
	"fmt"
	"log"
	"strings"
)

const keywordSearchSize = 10

var classifyKeywordsFn = ClassifyKeywords

// RunKeywordMatrix builds an opportunity matrix across keywords: demand
// from average views of the ranking videos, competition from the share of
// results held by large channels, and one batched LLM verdict per keyword.
func RunKeywordMatrix(cfg Config, client *YouTubeClient, keywords []string, outputStem string) (RunSummary, error) {
	summary := RunSummary{Command: "keywords", Target: Target{Kind: TargetKeywords, Values: keywords}}

	var records []KeywordRecord
	for _, keyword := range keywords {
		record, err := collectKeywordStats(client, keyword)
		if err != nil {
			log.Printf("keywords stats error keyword=%q err=%v (continuing with remaining keywords)", keyword, err)
			continue
		}
		records = append(records, record)
	}
	summary.ItemsFetched = len(records)
	if len(records) == 0 {
		summary.Lines = append(summary.Lines, "no keyword statistics collected")
		if outputStem != "" {
			path, err := WriteMarkdownReport(outputStem, noDataMarkdown("Keyword Opportunity Matrix"))
			recordArtifact(&summary, path, err)
		}
		return summary, nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = fmt.Sprintf("%s | avg views %d | big-channel share %.0f%%", r.Keyword, r.AvgViews, r.BigChannelPct)
	}
	batch := NewBatch(texts)

	verdicts, usage, err := classifyKeywordsFn(cfg, batch)
	summary.Usage.Add(usage)
	if err != nil {
		log.Printf("keywords classify err=%v (matrix rendered without verdicts)", err)
	} else {
		merged, _ := MergeVerdicts(batch.Len(), verdicts, func(v KeywordVerdict) int { return v.Index })
		for idx, v := range merged {
			records[idx].Classified = true
			records[idx].Verdict = v.Verdict
			records[idx].Reasoning = v.Reasoning
			summary.ItemsClassified++
		}
	}

	for _, r := range records {
		verdict := r.Verdict
		if !r.Classified {
			verdict = "N/A"
		}
		summary.Lines = append(summary.Lines, fmt.Sprintf("  %s: %s (avg views %d, big-channel share %.0f%%)",
			r.Keyword, verdict, r.AvgViews, r.BigChannelPct))
	}

	if outputStem != "" {
		path, err := WriteMarkdownReport(outputStem, keywordMatrixMarkdown(records))
		recordArtifact(&summary, path, err)
	}
	return summary, nil
}

// collectKeywordStats fetches one keyword's result page and derives its
// demand/competition numbers.
func collectKeywordStats(client *YouTubeClient, keyword string) (KeywordRecord, error) {
	results, err := client.SearchVideos(keyword, keywordSearchSize)
	if err != nil {
		return KeywordRecord{}, err
	}
	if len(results) == 0 {
		return KeywordRecord{}, fmt.Errorf("no search results for %q", keyword)
	}

	ids := make([]string, len(results))
	for i, v := range results {
		ids[i] = v.ID
	}
	detailed, err := client.FetchVideoDetails(ids)
	if err != nil {
		return KeywordRecord{}, err
	}

	var totalViews int64
	for _, v := range detailed {
		totalViews += v.ViewCount
	}
	avgViews := int64(0)
	if len(detailed) > 0 {
		avgViews = totalViews / int64(len(detailed))
	}

	stats, err := client.FetchChannelStats(uniqueChannelIDs(detailed))
	if err != nil {
		return KeywordRecord{}, err
	}
	big := 0
	for _, v := range detailed {
		if stats[v.ChannelID].Subscribers > 100000 {
			big++
		}
	}

	return KeywordRecord{
		Keyword:       keyword,
		AvgViews:      avgViews,
		BigChannelPct: Density(big, len(detailed)),
	}, nil
}

func keywordMatrixMarkdown(records []KeywordRecord) string {
	var b strings.Builder
	b.WriteString("# Keyword Opportunity Matrix\n\n")
	b.WriteString("## Summary Metrics\n")
	fmt.Fprintf(&b, "- **Keywords analyzed:** %d\n\n", len(records))
	b.WriteString("## Matrix\n\n")
	b.WriteString("| Keyword | Demand (Avg Views) | Competition (Big-Channel Share) | Opportunity | Reasoning |\n")
	b.WriteString("|:---|---:|---:|:---|:---|\n")
	for _, r := range records {
		verdict := r.Verdict
		if !r.Classified {
			verdict = "N/A"
		}
		fmt.Fprintf(&b, "| %s | %d | %.0f%% | %s | %s |\n",
			escapeMarkdownCell(r.Keyword), r.AvgViews, r.BigChannelPct, verdict, escapeMarkdownCell(r.Reasoning))
	}
	return b.String()
}
