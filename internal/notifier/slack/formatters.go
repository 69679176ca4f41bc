package slack

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/arenax/arenax-server/internal/match"
)

// formatBookingNotification creates the Slack message for a confirmed match booking using Block Kit.
func (s *Notifier) formatBookingNotification(m *match.Match, venueName string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏟️ New match booked! 🏟️", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Venue: %s\nSport: %s\nTime: %s %s - %s", venueName, m.Sport, m.Date, m.StartTime, m.EndTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if m.Capacity > 0 {
		contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Capacity: %d players", m.Capacity), true, false)
		blocks = append(blocks, slack.NewContextBlock("", contextText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchCompletedNotification creates the Slack message for a match that reached its end time.
func (s *Notifier) formatMatchCompletedNotification(m *match.Match, venueName string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Match finished! 🏁", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s at %s, %s %s - %s", m.Sport, venueName, m.Date, m.StartTime, m.EndTime)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatCheckInNotification creates the Slack message for a player check-in.
func (s *Notifier) formatCheckInNotification(m *match.Match, playerName string, auto bool) slack.Message {
	blocks := make([]slack.Block, 0)

	how := "checked in"
	if auto {
		how = "auto checked in by proximity"
	}
	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("✅ %s %s for the %s match on %s at %s", playerName, how, m.Sport, m.Date, m.StartTime), true, false)
	blocks = append(blocks, slack.NewSectionBlock(text, nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPaymentNotification creates the Slack message for a confirmed wallet top-up.
func (s *Notifier) formatPaymentNotification(userID string, amount float64) slack.Message {
	blocks := make([]slack.Block, 0)

	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("💰 Wallet credited: %.2f for user %s", amount, userID), true, false)
	blocks = append(blocks, slack.NewSectionBlock(text, nil, nil))

	return slack.NewBlockMessage(blocks...)
}
