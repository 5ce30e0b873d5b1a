package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// eventEnvelope is the slice of the published envelope the gateway needs
// to route an event to its draft room.
type eventEnvelope struct {
	DraftID string `json:"draftId"`
}

// Consumer subscribes to the allocation stream and relays draft events to
// the hub's rooms.
type Consumer struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	hub      *Hub
	stream   string
	subjects string
	name     string
}

func NewConsumer(natsURL, stream, subjectPrefix string, hub *Hub) (*Consumer, error) {
	nc, err := nats.Connect(natsURL,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	return &Consumer{
		nc:       nc,
		js:       js,
		hub:      hub,
		stream:   stream,
		subjects: fmt.Sprintf("%s.>", subjectPrefix),
		name:     "draft-gateway",
	}, nil
}

// Run consumes until ctx is cancelled. New clients only see events from
// the point they connect; replay is the draft state read API's job.
func (c *Consumer) Run(ctx context.Context) error {
	stream, err := c.js.Stream(ctx, c.stream)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          c.name,
		Durable:       c.name,
		FilterSubject: c.subjects,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := c.handle(msg.Data()); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to relay event")
		}
		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	defer cc.Stop()

	log.Info().Str("stream", c.stream).Msg("gateway consumer started")
	<-ctx.Done()
	return nil
}

func (c *Consumer) handle(data []byte) error {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.DraftID == "" {
		// Pool-level event with no draft room; nothing to relay.
		return nil
	}
	draftID, err := uuid.Parse(env.DraftID)
	if err != nil {
		return fmt.Errorf("parse draft id: %w", err)
	}
	c.hub.Broadcast(draftID, data)
	return nil
}

func (c *Consumer) Close() {
	c.nc.Close()
}
