package service

import (
	"context"
	"encoding/json"

	"medicab-be/internal/dto"
	"medicab-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

// publisherService puts domain events on the in-process watermill bus. The
// consumer side fans them out to mail and NATS, so request handlers never
// block on external systems.
type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	msg := dto.DomainEventMessage{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.pubSub.Publish(p.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
