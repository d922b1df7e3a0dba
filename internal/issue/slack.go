package issue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/frahmantamala/workforce-ops/internal/core/events"
)

// SlackPoster is the part of *slack.Client the notifier uses.
type SlackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts newly created issues at or above a priority to a channel.
type SlackNotifier struct {
	client      SlackPoster
	channelID   string
	minPriority Priority
	logger      *slog.Logger
}

func NewSlackNotifier(client SlackPoster, channelID string, minPriority Priority, logger *slog.Logger) *SlackNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	if minPriority.Rank() == 0 {
		minPriority = PriorityHigh
	}
	return &SlackNotifier{client: client, channelID: channelID, minPriority: minPriority, logger: logger}
}

func (n *SlackNotifier) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeIssueCreated, n.Handle)
}

func (n *SlackNotifier) Handle(ctx context.Context, e events.Event) error {
	created, ok := e.(*events.IssueCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", e, e.EventType())
	}

	if Priority(created.Priority).Rank() < n.minPriority.Rank() {
		n.logger.Debug("issue below slack threshold", "issue_id", created.IssueID, "priority", created.Priority)
		return nil
	}

	text := fmt.Sprintf("New %s priority issue: %s", created.Priority, created.Title)
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "New issue reported", false, false)),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*", created.Title), false, false),
			[]*slack.TextBlockObject{
				slack.NewTextBlockObject(slack.MarkdownType, "*Priority:* "+created.Priority, false, false),
				slack.NewTextBlockObject(slack.MarkdownType, "*Category:* "+created.Category, false, false),
				slack.NewTextBlockObject(slack.MarkdownType, "*Reported by:* "+created.UserID, false, false),
			},
			nil,
		),
	}

	_, ts, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("post issue %s to slack: %w", created.IssueID, err)
	}

	n.logger.Info("issue posted to slack", "issue_id", created.IssueID, "channel", n.channelID, "ts", ts)
	return nil
}
