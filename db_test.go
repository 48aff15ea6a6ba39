package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sociallens-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAndListRuns(t *testing.T) {
	db := newTestDB(t)
	started := time.Now().UTC().Truncate(time.Second)

	summary := RunSummary{
		Command:         "reddit",
		Target:          Target{Kind: TargetSubreddits, Values: []string{"golang", "selfhosted"}},
		ItemsFetched:    100,
		ItemsClassified: 97,
		Artifacts:       []string{"reports/r.csv", "reports/r.md"},
		FailedArtifacts: []string{"reports/r.html"},
		Usage:           LLMUsage{InputTokens: 1200, OutputTokens: 340},
	}
	id, err := RecordRun(db, summary, started, started.Add(40*time.Second), nil)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a generated run id")
	}

	runs, err := ListRecentRuns(db, 10)
	if err != nil {
		t.Fatalf("ListRecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Command != "reddit" || r.Status != "ok" {
		t.Errorf("run row wrong: %+v", r)
	}
	if r.Target != "subreddits:golang,selfhosted" {
		t.Errorf("target = %q", r.Target)
	}
	if r.ItemsFetched != 100 || r.ItemsClassified != 97 {
		t.Errorf("counters wrong: %+v", r)
	}
	if r.TokensIn != 1200 || r.TokensOut != 340 {
		t.Errorf("token counters wrong: %+v", r)
	}
	if r.Artifacts != "reports/r.csv,reports/r.md" || r.FailedArtifacts != "reports/r.html" {
		t.Errorf("artifact columns wrong: %+v", r)
	}
}

func TestRecordRunWithError(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().UTC()

	summary := RunSummary{Command: "youtube", Target: Target{Kind: TargetChannelID, Value: "UC123"}}
	if _, err := RecordRun(db, summary, now, now, fmt.Errorf("channel not found")); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := ListRecentRuns(db, 1)
	if err != nil {
		t.Fatalf("ListRecentRuns failed: %v", err)
	}
	if runs[0].Status != "error" || runs[0].Error != "channel not found" {
		t.Errorf("error run wrong: %+v", runs[0])
	}
}

func TestListRecentRunsOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 5; i++ {
		summary := RunSummary{
			Command: "discover",
			Target:  Target{Kind: TargetTopic, Value: fmt.Sprintf("topic-%d", i)},
		}
		startedAt := base.Add(time.Duration(i) * time.Minute)
		if _, err := RecordRun(db, summary, startedAt, startedAt.Add(time.Second), nil); err != nil {
			t.Fatalf("RecordRun %d failed: %v", i, err)
		}
	}

	runs, err := ListRecentRuns(db, 3)
	if err != nil {
		t.Fatalf("ListRecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(runs))
	}
	if runs[0].Target != "topic:topic-4" || runs[2].Target != "topic:topic-2" {
		t.Errorf("expected newest first: %v, %v", runs[0].Target, runs[2].Target)
	}
}
