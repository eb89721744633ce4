// Learnrec - Learning Content Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnrec

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/learnrec/internal/config"
	"github.com/tomtom215/learnrec/internal/eventprocessor"
	"github.com/tomtom215/learnrec/internal/logging"
	"github.com/tomtom215/learnrec/internal/recommend"
)

// emitSource tags events published by this CLI.
const emitSource = "learnrecctl"

var (
	natsURL     string
	emitTimeout time.Duration
)

// emitCmd groups the publishing subcommands
var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Publish behavior or content events to NATS",
	Long: `Publish events onto the learnrec JetStream topics. The server ingests
them asynchronously; invalid events end up on the poison topic.`,
}

// emitBehaviorCmd publishes one behavior event
var emitBehaviorCmd = &cobra.Command{
	Use:   "behavior <user-id> <kind> [file]",
	Short: "Publish a behavior event",
	Long: `Publish a behavior event. The payload is read as JSON from file, or
from stdin when file is omitted or "-".

Examples:
  # Completed course with a rating
  echo '{"content_id":"go-101","rating":5}' | learnrecctl emit behavior alice completed

  # Search query from a file
  learnrecctl emit behavior alice searched search.json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runEmitBehavior,
}

// emitContentCmd publishes one catalog item
var emitContentCmd = &cobra.Command{
	Use:   "content [file]",
	Short: "Publish a content registration event",
	Long: `Publish a content item read as JSON from file, or from stdin when file is
omitted or "-".

Examples:
  learnrecctl emit content item.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmitContent,
}

func init() {
	emitCmd.PersistentFlags().StringVar(&natsURL, "nats", "", "NATS URL (default: events.nats_url from config)")
	emitCmd.PersistentFlags().DurationVar(&emitTimeout, "timeout", 10*time.Second, "publish timeout")
	emitCmd.AddCommand(emitBehaviorCmd)
	emitCmd.AddCommand(emitContentCmd)
}

func runEmitBehavior(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd.InOrStdin(), args[2:])
	if err != nil {
		return err
	}
	event, err := buildBehaviorEvent(args[0], args[1], raw)
	if err != nil {
		return err
	}
	return withPublisher(cmd, func(ctx context.Context, pub *eventprocessor.Publisher) error {
		if err := pub.PublishBehavior(ctx, event); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %s event %s for %s\n", event.Type, event.EventID, event.UserID)
		return nil
	})
}

func runEmitContent(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	event, err := buildContentEvent(raw)
	if err != nil {
		return err
	}
	return withPublisher(cmd, func(ctx context.Context, pub *eventprocessor.Publisher) error {
		if err := pub.PublishContent(ctx, event); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published content %s as event %s\n", event.Item.ID, event.EventID)
		return nil
	})
}

// buildBehaviorEvent validates the payload locally so obvious mistakes
// never reach the stream.
func buildBehaviorEvent(userID, kindName string, raw []byte) (*eventprocessor.BehaviorEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	kind, err := recommend.ParseEventKind(kindName)
	if err != nil {
		return nil, err
	}
	payload, err := recommend.DecodeEventPayload(kind, raw)
	if err != nil {
		return nil, err
	}
	if err := recommend.CheckEvent(kind, payload); err != nil {
		return nil, err
	}
	return eventprocessor.NewBehaviorEvent(userID, payload, emitSource)
}

func buildContentEvent(raw []byte) (*eventprocessor.ContentEvent, error) {
	var item recommend.ContentItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode content item: %w", err)
	}
	if item.ID == "" {
		return nil, fmt.Errorf("content item id is required")
	}
	return eventprocessor.NewContentEvent(item, emitSource), nil
}

// readInput reads args[0], or in when args is empty or "-".
func readInput(in io.Reader, args []string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no payload to publish")
	}
	return data, nil
}

// withPublisher connects a breaker-guarded publisher for the configured
// topics and closes it after fn.
func withPublisher(cmd *cobra.Command, fn func(ctx context.Context, pub *eventprocessor.Publisher) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	url := natsURL
	if url == "" {
		url = cfg.Events.NATSURL
	}

	pub, err := newPublisher(url, &cfg.Events)
	if err != nil {
		return err
	}
	defer func() {
		if err := pub.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing publisher")
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), emitTimeout)
	defer cancel()
	return fn(ctx, pub)
}

func newPublisher(url string, cfg *config.EventsConfig) (*eventprocessor.Publisher, error) {
	logger := logging.Logger()
	raw, err := eventprocessor.NewNATSPublisher(
		eventprocessor.DefaultPublisherConfig(url),
		logging.NewWatermillLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return eventprocessor.NewPublisher(
		raw,
		eventprocessor.NewCircuitBreaker(eventprocessor.DefaultCircuitBreakerConfig(), logger),
		topicsFor(cfg),
	), nil
}

func topicsFor(cfg *config.EventsConfig) eventprocessor.Topics {
	topics := eventprocessor.DefaultTopics()
	if cfg.BehaviorTopic != "" {
		topics.Behavior = cfg.BehaviorTopic
	}
	if cfg.ContentTopic != "" {
		topics.Content = cfg.ContentTopic
	}
	if cfg.PoisonTopic != "" {
		topics.Poison = cfg.PoisonTopic
	}
	return topics
}
