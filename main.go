package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var validTimeFilters = map[string]bool{
	"all": true, "day": true, "hour": true, "week": true, "month": true, "year": true,
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := LoadConfig()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "reddit":
		err = cmdReddit(cfg, args)
	case "youtube":
		err = cmdYouTube(cfg, args)
	case "discover":
		err = cmdDiscover(cfg, args)
	case "keywords":
		err = cmdKeywords(cfg, args)
	case "communities":
		err = cmdCommunities(cfg, args)
	case "runs":
		err = cmdRuns(cfg, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Social Listening Toolbox

Usage:
  sociallens reddit [flags] <subreddit> [subreddit...]
  sociallens youtube [flags] (-channel-url URL | -channel-id ID)
  sociallens discover [flags] <topic>
  sociallens keywords [flags] <kw1,kw2,...>
  sociallens communities [flags] <topic>
  sociallens runs [flags]

Run 'sociallens <command> -h' for command flags.`)
}

func cmdReddit(cfg Config, args []string) error {
	fs := flag.NewFlagSet("reddit", flag.ExitOnError)
	limit := fs.Int("limit", 50, "posts to fetch from each subreddit")
	timeFilter := fs.String("time-filter", "month", "top-post time filter: all, day, hour, week, month, year")
	out := fs.String("out", "reddit_analysis_results", "output filename stem under output_dir (empty for console only)")
	deepDive := fs.Bool("deep-dive", false, "run the deep-dive pain point analysis over problem posts")
	contextLabel := fs.String("context", "", "domain context for the deep-dive analysis")
	snippetLen := fs.Int("snippet-len", 0, "body snippet length for prompts and CSV (0 uses the configured default)")
	schedule := fs.String("schedule", "", "re-run on a 5-field cron expression and stay resident")
	fs.Parse(args)

	subreddits := fs.Args()
	if len(subreddits) == 0 {
		return fmt.Errorf("at least one subreddit is required")
	}
	if !validTimeFilters[*timeFilter] {
		return fmt.Errorf("invalid -time-filter %q", *timeFilter)
	}
	if err := cfg.RequireRedditCreds(); err != nil {
		return err
	}
	if err := cfg.RequireLLMCreds(); err != nil {
		return err
	}
	if *snippetLen > 0 {
		cfg.SnippetLength = *snippetLen
	}

	params := RedditParams{
		Subreddits: subreddits,
		Limit:      *limit,
		TimeFilter: *timeFilter,
		OutputStem: resolveStem(cfg, *out),
		DeepDive:   *deepDive,
		Context:    *contextLabel,
	}
	run := func() (RunSummary, error) {
		return RunRedditAnalysis(cfg, NewRedditClient(cfg), params)
	}
	return maybeScheduled(cfg, *schedule, run)
}

func cmdYouTube(cfg Config, args []string) error {
	fs := flag.NewFlagSet("youtube", flag.ExitOnError)
	channelURL := fs.String("channel-url", "", "URL of the channel to analyze")
	channelID := fs.String("channel-id", "", "direct channel ID (UC...)")
	videoLimit := fs.Int("video-limit", 10, "number of videos to analyze")
	sortBy := fs.String("sort-by", "popular", "video selection: popular or newest")
	commentLimit := fs.Int("comment-limit", 15, "comments to fetch per video")
	trends := fs.Bool("trends", false, "analyze content strategy evolution instead")
	out := fs.String("out", "youtube_analysis_results", "output filename stem under output_dir (empty for console only)")
	schedule := fs.String("schedule", "", "re-run on a 5-field cron expression and stay resident")
	fs.Parse(args)

	if (*channelURL == "") == (*channelID == "") {
		return fmt.Errorf("exactly one of -channel-url or -channel-id is required")
	}
	if *sortBy != "popular" && *sortBy != "newest" {
		return fmt.Errorf("invalid -sort-by %q", *sortBy)
	}
	if err := cfg.RequireYouTubeCreds(); err != nil {
		return err
	}
	if err := cfg.RequireLLMCreds(); err != nil {
		return err
	}

	params := YouTubeParams{
		ChannelID:    *channelID,
		ChannelURL:   *channelURL,
		VideoLimit:   *videoLimit,
		SortBy:       *sortBy,
		CommentLimit: *commentLimit,
		Trends:       *trends,
		OutputStem:   resolveStem(cfg, *out),
	}
	run := func() (RunSummary, error) {
		return RunYouTubeAnalysis(cfg, NewYouTubeClient(cfg), params)
	}
	return maybeScheduled(cfg, *schedule, run)
}

func cmdDiscover(cfg Config, args []string) error {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	out := fs.String("out", "", "output filename stem under output_dir (empty for console only)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one topic is required")
	}
	if err := cfg.RequireYouTubeCreds(); err != nil {
		return err
	}
	if err := cfg.RequireLLMCreds(); err != nil {
		return err
	}

	topic := fs.Arg(0)
	return executeRun(cfg, func() (RunSummary, error) {
		return RunDiscoverAnalysis(cfg, NewYouTubeClient(cfg), topic, resolveStem(cfg, *out))
	})
}

func cmdKeywords(cfg Config, args []string) error {
	fs := flag.NewFlagSet("keywords", flag.ExitOnError)
	out := fs.String("out", "", "output filename stem under output_dir (empty for console only)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("a comma-separated keyword list is required")
	}
	var keywords []string
	for _, kw := range strings.Split(fs.Arg(0), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return fmt.Errorf("a comma-separated keyword list is required")
	}
	if err := cfg.RequireYouTubeCreds(); err != nil {
		return err
	}
	if err := cfg.RequireLLMCreds(); err != nil {
		return err
	}

	return executeRun(cfg, func() (RunSummary, error) {
		return RunKeywordMatrix(cfg, NewYouTubeClient(cfg), keywords, resolveStem(cfg, *out))
	})
}

func cmdCommunities(cfg Config, args []string) error {
	fs := flag.NewFlagSet("communities", flag.ExitOnError)
	out := fs.String("out", "", "output filename stem under output_dir (empty for console only)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one topic is required")
	}
	if err := cfg.RequireRedditCreds(); err != nil {
		return err
	}

	topic := fs.Arg(0)
	return executeRun(cfg, func() (RunSummary, error) {
		return RunCommunityDiscovery(cfg, NewRedditClient(cfg), topic, resolveStem(cfg, *out))
	})
}

func cmdRuns(cfg Config, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of recent runs to show")
	fs.Parse(args)

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer db.Close()

	runs, err := ListRecentRuns(db, *limit)
	if err != nil {
		return fmt.Errorf("reading run history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %-11s %-40s fetched=%-4d classified=%-4d tokens=%d status=%s\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Command, r.Target,
			r.ItemsFetched, r.ItemsClassified, r.TokensIn+r.TokensOut, r.Status)
		if r.Error != "" {
			fmt.Printf("    error: %s\n", r.Error)
		}
		if r.Artifacts != "" {
			fmt.Printf("    artifacts: %s\n", r.Artifacts)
		}
	}
	return nil
}

// resolveStem turns a user-supplied filename stem into a path under the
// configured output directory; empty stays empty (console-only run).
func resolveStem(cfg Config, out string) string {
	if out == "" {
		return ""
	}
	return filepath.Join(cfg.OutputDir, sanitizeFilename(out))
}

func maybeScheduled(cfg Config, schedule string, run func() (RunSummary, error)) error {
	if schedule == "" {
		return executeRun(cfg, run)
	}
	return StartAnalysisScheduler(schedule, func() {
		if err := executeRun(cfg, run); err != nil {
			log.Printf("scheduled run error: %v", err)
		}
	})
}

// executeRun runs one analysis end to end: console summary, run history,
// optional Slack delivery. History and delivery failures never mask the
// run's own outcome.
func executeRun(cfg Config, run func() (RunSummary, error)) error {
	startedAt := time.Now()
	summary, err := run()
	finishedAt := time.Now()

	fmt.Print(summary.Render())
	if err != nil {
		log.Printf("run error: %v", err)
	}

	if db, dbErr := InitDB(cfg.DBPath); dbErr != nil {
		log.Printf("run history unavailable: %v", dbErr)
	} else {
		if _, recErr := RecordRun(db, summary, startedAt, finishedAt, err); recErr != nil {
			log.Printf("run history write failed: %v", recErr)
		}
		db.Close()
	}

	NotifyRunSummary(cfg, summary)
	return err
}
