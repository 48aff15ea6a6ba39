package main

import (
	"fmt"
	"strings"
)

// batchSeparator delimits items inside a serialized batch. A multi-character
// rule is unlikely to collide with user content; entry text is additionally
// quoted, so a stray "---" inside a comment cannot open a new entry.
const batchSeparator = "---"

// Prompt builders are plain functions over strings so their shape can be
// pinned down in tests without any network call. Each batched prompt
// requires the entire response to be a single JSON object whose top-level
// "results" key holds one object per input index.

func postBatchPrompt(payload string) string {
	return fmt.Sprintf(`Analyze each of the following social media posts, provided as an indexed list.
Each entry is "index: "title | body snippet"".

%s
%s
%s

Determine for every post whether it expresses a problem, question, or negative feedback.

Your entire response MUST be a single valid JSON object with one top-level key, "results",
holding an array with one object per input post:
{
  "results": [
    {
      "index": 0,
      "is_problem": true,
      "summary": "concise summary of the problem, or empty string when is_problem is false",
      "tags": ["short tags like 'feature request', 'usage question', 'bug', 'complaint'; empty array when is_problem is false"]
    }
  ]
}
Respond with JSON only, no markdown.`, batchSeparator, strings.TrimRight(payload, "\n"), batchSeparator)
}

func commentBatchPrompt(payload string) string {
	return fmt.Sprintf(`Analyze each of the following YouTube comments, provided as an indexed list.

%s
%s
%s

Classify every comment. "category" must be one of: %s.
"summary" must rephrase the comment into a natural, fluent sentence capturing the
commenter's tone and core message (rephrase, do not shorten to a fragment).

Your entire response MUST be a single valid JSON object with one top-level key, "results",
holding an array with one object per input comment:
{
  "results": [
    {"index": 0, "category": "Question", "summary": "..."}
  ]
}
Respond with JSON only, no markdown.`, batchSeparator, strings.TrimRight(payload, "\n"), batchSeparator, quoteList(CommentCategories))
}

func keywordBatchPrompt(payload string) string {
	return fmt.Sprintf(`You are a YouTube niche analyst. Each entry below describes one search keyword with
its observed demand and competition statistics, as an indexed list.
Each entry is "index: "keyword | avg views | share of results from channels over 100k subs"".

%s
%s
%s

Assess the opportunity each keyword represents for a new creator. "verdict" must be one of:
"Red Ocean" (high demand but saturated), "Worth Trying" (viable with effort),
"Golden Opportunity" (demand with weak competition).

Your entire response MUST be a single valid JSON object with one top-level key, "results",
holding an array with one object per input keyword:
{
  "results": [
    {"index": 0, "verdict": "Worth Trying", "reasoning": "..."}
  ]
}
Respond with JSON only, no markdown.`, batchSeparator, strings.TrimRight(payload, "\n"), batchSeparator)
}

// painScoreMarker is the machine-readable line the deep-dive prompt demands
// at the end of the response; reddit_analysis.go extracts it by regex.
const painScoreMarker = "Pain-Point-Concentration-Score"

func deepDivePrompt(snippets []string, contextLabel string) string {
	return fmt.Sprintf(`You are an expert market analyst specializing in the '%s' domain.
Your task is to analyze the following list of user posts to identify recurring pain points.

Here are the posts:
%s
%s
%s

Based on the posts, provide a detailed analysis including:
1. **Key Pain Points:** the most common and significant pain points.
2. **User Sentiment:** the overall sentiment (frustration, confusion, desire for a solution, etc.).
3. **Opportunity Areas:** potential product/service improvements or content ideas.
4. **Keywords/Phrases:** important keywords or phrases related to the pain points.

Finally, on a new line at the very end of your entire response, add the score in the
machine-readable format: `+"`%s: X/10`"+` where X is the score.`,
		contextLabel, batchSeparator, strings.Join(snippets, "\n"+batchSeparator+"\n"), batchSeparator, painScoreMarker)
}

func contentStrategyPrompt(titles []string) string {
	return fmt.Sprintf(`As a YouTube content strategy expert, analyze the following list of video titles
from a single channel. Identify and summarize the main content pillars or themes
as a concise, bulleted list.

Video Titles:
%s
%s
%s`, batchSeparator, strings.Join(titles, "\n"), batchSeparator)
}

func strategyEvolutionPrompt(oldest, newest []string) string {
	return fmt.Sprintf(`As a senior YouTube strategy consultant, analyze the evolution of a channel's
content strategy. Below are the channel's oldest and newest video titles, each
prefixed with its publication date (YYYY-MM-DD). Compare the two lists and
summarize the changes in content, style, and focus. Use the dates to estimate
approximately when these shifts began.

Consider:
- Topic shift: has the channel niched down, expanded, or pivoted? When?
- Titling style: has it changed, and around what time?
- Target audience: does the topic change suggest an audience change? When did it start?

### Oldest Video Titles:
%s

### Newest Video Titles:
%s

### Analysis Summary:`, strings.Join(oldest, "\n"), strings.Join(newest, "\n"))
}

func freshnessPrompt(total int, buckets []Bucket) string {
	return fmt.Sprintf(`As a YouTube niche analyst, evaluate the following distribution of video ages for
a search keyword. A niche with many old videos (over a year) suggests the
algorithm is starved for fresh content and represents an opportunity; a niche
dominated by very recent videos is highly competitive.

Data:
Total videos analyzed: %d
%s

Provide a concise conclusion starting with a "Freshness Score" from 1-10
(10 meaning a large opportunity for new content) and a brief justification.`, total, renderBucketLines(buckets))
}

func authorityPrompt(total int, buckets []Bucket) string {
	return fmt.Sprintf(`As a YouTube niche analyst, evaluate the following distribution of channel sizes
for videos ranking for a keyword. A niche where small channels (under 100k subs)
can rank is friendly to newcomers; one dominated by channels over 1M subs is
very difficult for new creators.

Data:
Total videos analyzed: %d
%s

Provide a concise conclusion starting with a "Newbie-Friendliness Score" from
1-10 (10 being extremely friendly) and a brief justification.`, total, renderBucketLines(buckets))
}

func faqPrompt(questions []string) string {
	var lines strings.Builder
	for _, q := range questions {
		lines.WriteString("- ")
		lines.WriteString(q)
		lines.WriteString("\n")
	}
	return fmt.Sprintf(`As a community manager, analyze the following list of questions extracted from a
YouTube comment section. Group them into recurring themes and summarize the top
3-5 most frequently asked questions as a concise, bulleted list.

Questions List:
%s
Top Frequent Questions Summary:`, lines.String())
}

func renderBucketLines(buckets []Bucket) string {
	var sb strings.Builder
	for _, b := range buckets {
		fmt.Fprintf(&sb, "%s: %d\n", b.Label, b.Count)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
