package main

import "testing"

func TestStartAnalysisSchedulerRejectsBadExpression(t *testing.T) {
	err := StartAnalysisScheduler("not a cron line", func() {
		t.Fatalf("job must not run with an invalid schedule")
	})
	if err == nil {
		t.Fatalf("expected an error for an invalid cron expression")
	}
}

func TestStartAnalysisSchedulerRejectsSixFields(t *testing.T) {
	// Second-granularity expressions are not accepted; the schedule is
	// minute-based.
	err := StartAnalysisScheduler("0 0 9 * * *", func() {
		t.Fatalf("job must not run with an invalid schedule")
	})
	if err == nil {
		t.Fatalf("expected an error for a 6-field expression")
	}
}
