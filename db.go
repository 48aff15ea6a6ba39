package main

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		command          TEXT NOT NULL,
		target           TEXT NOT NULL,
		started_at       DATETIME NOT NULL,
		finished_at      DATETIME NOT NULL,
		items_fetched    INTEGER NOT NULL DEFAULT 0,
		items_classified INTEGER NOT NULL DEFAULT 0,
		artifacts        TEXT DEFAULT '',
		failed_artifacts TEXT DEFAULT '',
		tokens_in        INTEGER NOT NULL DEFAULT 0,
		tokens_out       INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'ok',
		error            TEXT DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

type RunRow struct {
	ID              string
	Command         string
	Target          string
	StartedAt       time.Time
	FinishedAt      time.Time
	ItemsFetched    int
	ItemsClassified int
	Artifacts       string
	FailedArtifacts string
	TokensIn        int64
	TokensOut       int64
	Status          string
	Error           string
}

// RecordRun persists one finished analysis. History keeping is best-effort
// bookkeeping; callers log a failure and move on.
func RecordRun(db *sql.DB, summary RunSummary, startedAt, finishedAt time.Time, runErr error) (string, error) {
	id := uuid.NewString()
	status := "ok"
	errMsg := ""
	if runErr != nil {
		status = "error"
		errMsg = runErr.Error()
	}
	_, err := db.Exec(`
		INSERT INTO runs (id, command, target, started_at, finished_at, items_fetched, items_classified,
			artifacts, failed_artifacts, tokens_in, tokens_out, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, summary.Command, summary.Target.String(), startedAt, finishedAt,
		summary.ItemsFetched, summary.ItemsClassified,
		strings.Join(summary.Artifacts, ","), strings.Join(summary.FailedArtifacts, ","),
		summary.Usage.InputTokens, summary.Usage.OutputTokens, status, errMsg)
	return id, err
}

func ListRecentRuns(db *sql.DB, limit int) ([]RunRow, error) {
	rows, err := db.Query(`
		SELECT id, command, target, started_at, finished_at, items_fetched, items_classified,
			artifacts, failed_artifacts, tokens_in, tokens_out, status, error
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Command, &r.Target, &r.StartedAt, &r.FinishedAt,
			&r.ItemsFetched, &r.ItemsClassified, &r.Artifacts, &r.FailedArtifacts,
			&r.TokensIn, &r.TokensOut, &r.Status, &r.Error); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
