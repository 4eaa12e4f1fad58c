package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Publish sends one typed event to its topic.
type Publish[T any] func(event *T) error

// NewPublishFunc binds a topic to an event type. The returned function
// serializes the event as JSON and publishes it with a fresh message UUID.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(event *T) error {
		msg, err := encode(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		return publisher.Publish(topic, msg)
	}
}

func encode(event any) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return message.NewMessage(uuid.NewString(), payload), nil
}

// PublisherGroup owns the broker connection behind every typed publish
// function, so one Shutdown closes them all.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps a publisher for lifecycle management.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher exposes the underlying publisher for NewPublishFunc.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher connection.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}
