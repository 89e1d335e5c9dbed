package service

import (
	"context"
	"encoding/json"

	"notes-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2/log"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// NoteChangeHandler receives every decoded note change event.
type NoteChangeHandler func(ctx context.Context, event dto.PublishNoteChangedMessage)

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	handlers   []NoteChangeHandler
}

// NewConsumerService subscribes to note change events. With no handlers the
// events are written to the audit log only.
func NewConsumerService(subscriber message.Subscriber, topicName string, handlers ...NoteChangeHandler) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		handlers:   handlers,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	defer func() {
		if e := recover(); e != nil {
			// gochannel redelivers nacked messages, so a panicking handler would loop
			log.Errorf("[Consumer] panic while handling message %s: %v", msg.UUID, e)
			msg.Ack()
		}
	}()

	var payload dto.PublishNoteChangedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// a malformed payload will never decode, drop it
		log.Errorf("[Consumer] cannot decode payload: %v | payload: %s", err, string(msg.Payload))
		msg.Ack()
		return
	}

	log.Infof("[Audit] note %s %s", payload.NoteId, payload.Type)

	for _, h := range cs.handlers {
		h(ctx, payload)
	}

	msg.Ack()
}
