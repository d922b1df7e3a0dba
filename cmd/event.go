package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/workforce-ops/internal/core/events"
	"github.com/frahmantamala/workforce-ops/internal/issue"
	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish test events to check handler wiring such as the Slack issue notifier.`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long: `Publish a test event to an in-process event bus. checklist.submitted and issue.created
build the real event types; with --slack the issue notifier from config.yml is attached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishTestEvent(args[0])
	},
}

var (
	eventData     string
	eventPriority string
	eventSlack    bool
)

func publishTestEvent(eventType string) error {
	lg := logger.LoggerWrapper()
	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	if eventSlack {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if !cfg.Slack.Enabled {
			return fmt.Errorf("slack is disabled in config")
		}
		issue.NewSlackNotifier(slack.New(cfg.Slack.BotToken), cfg.Slack.ChannelID, issue.Priority(cfg.Slack.MinPriority), lg).Register(eventBus)
	}

	var event events.Event
	switch eventType {
	case events.EventTypeChecklistSubmitted:
		now := time.Now()
		event = events.NewChecklistSubmittedEvent(uuid.NewString(), "cli-user", "cli", 100, now.Format("2006-01-02"), now.Hour())
	case events.EventTypeIssueCreated:
		event = events.NewIssueCreatedEvent(uuid.NewString(), "cli-user", eventData, eventPriority, "general")
	default:
		event = events.NewBaseEvent(eventType, map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		})
	}

	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	if err := eventBus.Publish(context.Background(), event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	eventBus.Wait()
	lg.Info("test event published successfully")
	return nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "event message, used as the issue title for issue.created")
	publishEventCmd.Flags().StringVar(&eventPriority, "priority", "high", "issue priority for issue.created")
	publishEventCmd.Flags().BoolVar(&eventSlack, "slack", false, "attach the Slack issue notifier")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
