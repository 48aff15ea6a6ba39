package main

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartAnalysisScheduler re-runs an analysis on a 5-field cron expression
// (minute hour day-of-month month day-of-week), e.g. "0 9 * * *" for daily
// 9am or "0 9 * * 1-5" for weekdays. The job runs once immediately, then on
// schedule; the call blocks for the life of the process.
func StartAnalysisScheduler(schedule string, job func()) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return err
	}

	log.Printf("analysis scheduled (cron: %s)", schedule)
	job()

	for {
		now := time.Now()
		next := sched.Next(now)
		wait := next.Sub(now)
		log.Printf("next scheduled run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

		time.Sleep(wait)
		job()
	}
}
