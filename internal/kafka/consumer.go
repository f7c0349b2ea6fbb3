package kafka

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/twmb/franz-go/pkg/kgo"
	"vn.io.arda/taskmail/internal/application"
	"vn.io.arda/taskmail/internal/kafka/registry"
	"vn.io.arda/taskmail/internal/session"

	// Blank imports trigger init() in each handler file,
	// registering all event handlers into the registry.
	_ "vn.io.arda/taskmail/internal/kafka/handlers"
)

// Consumer wraps the franz-go Kafka client.
type Consumer struct {
	client  *kgo.Client
	service *application.Service
}

// New creates a Consumer with the given brokers, group ID, and topics.
func New(brokers []string, groupID string, topics []string, svc *application.Service) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}
	return &Consumer{client: client, service: svc}, nil
}

// Start begins polling Kafka and processing records. Blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	log.Info().Msg("kafka consumer started")

	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			break
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			log.Error().Err(err).Str("topic", topic).Int32("partition", partition).Msg("kafka fetch error")
		})

		fetches.EachRecord(func(r *kgo.Record) {
			c.process(ctx, r)
		})

		if err := c.client.CommitUncommittedOffsets(ctx); err != nil {
			log.Error().Err(err).Msg("kafka commit error")
		}
	}

	c.client.Close()
	log.Info().Msg("kafka consumer stopped")
}

// process dispatches a Kafka record to the registered handler via the
// registry, attaches the acting user to the context, then sends the emails.
func (c *Consumer) process(ctx context.Context, r *kgo.Record) {
	log.Debug().
		Str("topic", r.Topic).
		Str("event_id", eventID(r.Value)).
		Msg("processing kafka record")

	// task-reminders doesn't use eventType routing
	job := registry.DispatchDirect(r.Topic, r.Value)
	if job == nil {
		job = registry.Dispatch(r.Topic, r.Value)
	}

	if job == nil {
		log.Debug().Str("topic", r.Topic).Msg("no handler matched, skipping")
		return
	}

	if job.ActorID > 0 {
		ctx = session.WithActor(ctx, job.ActorID)
	}

	if err := c.service.Notify(ctx, *job); err != nil {
		log.Error().Err(err).
			Str("topic", r.Topic).
			Str("template", job.Template).
			Int64("project", job.ProjectID).
			Msg("failed to send notification emails for kafka event")
	}
}

// eventID extracts the producer's event id for log correlation, minting a
// fresh one when the message carries none.
func eventID(data []byte) string {
	var probe struct {
		EventID string `json:"eventId"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.EventID != "" {
		return probe.EventID
	}
	return uuid.NewString()
}
