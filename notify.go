package main

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

// NotifyRunSummary posts the run summary to the configured Slack channel.
// Delivery is best-effort: a failure is logged, never fatal for the run
// that produced the report.
func NotifyRunSummary(cfg Config, summary RunSummary) {
	if !cfg.SlackConfigured() {
		return
	}
	api := slack.New(cfg.SlackBotToken)
	msg := fmt.Sprintf("Analysis complete:\n```%s```", summary.Render())
	_, _, err := api.PostMessage(cfg.SlackChannelID, slack.MsgOptionText(msg, false))
	if err != nil {
		log.Printf("slack notify error: %v", err)
		return
	}
	log.Printf("slack notify sent channel=%s", cfg.SlackChannelID)
}
