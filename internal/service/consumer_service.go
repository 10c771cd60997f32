package service

import (
	"context"
	"encoding/json"

	"medicab-be/internal/dto"
	"medicab-be/internal/pkg/logger"
	"medicab-be/internal/pkg/mailer"
	"medicab-be/pkg/events"
	pktNats "medicab-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process event bus. Every event is forwarded
// to NATS; subscription lifecycle events additionally trigger transactional
// mail. Delivery failures are logged and the message is acked anyway: the
// originating request already succeeded and must not be replayed.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	natsPub      *pktNats.Publisher
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	natsPub *pktNats.Publisher,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		natsPub:      natsPub,
		logger:       sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var evt dto.DomainEventMessage
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.log("failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying will not help
		return
	}

	switch evt.Type {
	case "CABINET_REGISTERED":
		cs.sendTrialWelcome(evt)
	case "SUBSCRIPTION_UPGRADED":
		cs.sendUpgradeConfirmation(evt)
	}

	cs.forwardToNats(ctx, evt)
	msg.Ack()
}

func (cs *consumerService) sendTrialWelcome(evt dto.DomainEventMessage) {
	if cs.emailService == nil {
		return
	}
	email := stringField(evt.Data, "email")
	if email == "" {
		return
	}
	cabinetName := stringField(evt.Data, "cabinet_name")
	trialDays := intField(evt.Data, "trial_days")

	if err := cs.emailService.SendTrialWelcome(email, cabinetName, trialDays); err != nil {
		cs.log("failed to send trial welcome mail", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
}

func (cs *consumerService) sendUpgradeConfirmation(evt dto.DomainEventMessage) {
	if cs.emailService == nil {
		return
	}
	email := stringField(evt.Data, "email")
	if email == "" {
		return
	}
	planName := stringField(evt.Data, "plan_name")
	leftoverDays := intField(evt.Data, "leftover_days")

	if err := cs.emailService.SendUpgradeConfirmation(email, planName, leftoverDays); err != nil {
		cs.log("failed to send upgrade confirmation mail", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
}

func (cs *consumerService) forwardToNats(ctx context.Context, evt dto.DomainEventMessage) {
	if cs.natsPub == nil {
		return
	}
	base := events.BaseEvent{
		Type:       evt.Type,
		Data:       evt.Data,
		OccurredAt: evt.OccurredAt,
	}
	if err := cs.natsPub.Publish(ctx, base); err != nil {
		cs.log("failed to forward event to NATS", map[string]interface{}{
			"event_type": evt.Type,
			"error":      err.Error(),
		})
	}
}

func (cs *consumerService) log(message string, details map[string]interface{}) {
	if cs.logger != nil {
		cs.logger.Warn("consumer", message, details)
	}
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

func intField(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64: // JSON numbers decode as float64
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
