package sitepubsub

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/indyavik/theme-1-multi-site/common"
)

// MemoryPubSub is an in-process PubSub. Delivery is synchronous: Publish
// calls every matching handler before returning, which keeps single-editor
// flows deterministic.
type MemoryPubSub struct {
	mutex         sync.RWMutex
	subscriptions map[string]map[string]MessageHandler
	format        EncodingFormat
	closed        bool
}

// NewMemoryPubSub creates a MemoryPubSub.
func NewMemoryPubSub(options *Options) *MemoryPubSub {
	if options == nil {
		options = NewOptions()
	}
	return &MemoryPubSub{
		subscriptions: make(map[string]map[string]MessageHandler),
		format:        options.DefaultFormat,
	}
}

func (ps *MemoryPubSub) publish(ctx context.Context, topic string, v any) error {
	ps.mutex.RLock()
	if ps.closed {
		ps.mutex.RUnlock()
		return common.ErrClosed
	}
	codec, err := GetEncoderDecoder(ps.format)
	if err != nil {
		ps.mutex.RUnlock()
		return err
	}
	payload, err := codec.Encode(v)
	if err != nil {
		ps.mutex.RUnlock()
		return err
	}
	handlers := make([]MessageHandler, 0, len(ps.subscriptions[topic]))
	for _, h := range ps.subscriptions[topic] {
		handlers = append(handlers, h)
	}
	ps.mutex.RUnlock()

	msg := Message{Topic: topic, Payload: payload, Format: ps.format}
	for _, h := range handlers {
		if err := h(ctx, msg); err != nil {
			return errors.Wrapf(err, "handler failed for topic %s", topic)
		}
	}
	return nil
}

// PublishEvent publishes an event to the topic.
func (ps *MemoryPubSub) PublishEvent(ctx context.Context, topic string, ev EditorEvent) error {
	return ps.publish(ctx, topic, ev)
}

// PublishCommand publishes a command to the topic.
func (ps *MemoryPubSub) PublishCommand(ctx context.Context, topic string, cmd EditorCommand) error {
	return ps.publish(ctx, topic, cmd)
}

// Subscribe registers a handler for the topic under subscriberID.
func (ps *MemoryPubSub) Subscribe(ctx context.Context, topic string, subscriberID string, handler MessageHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	if ps.closed {
		return common.ErrClosed
	}
	if ps.subscriptions[topic] == nil {
		ps.subscriptions[topic] = make(map[string]MessageHandler)
	}
	ps.subscriptions[topic][subscriberID] = handler
	return nil
}

// Unsubscribe removes the subscriberID's handler for the topic.
func (ps *MemoryPubSub) Unsubscribe(ctx context.Context, topic string, subscriberID string) error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	if subs, ok := ps.subscriptions[topic]; ok {
		delete(subs, subscriberID)
		if len(subs) == 0 {
			delete(ps.subscriptions, topic)
		}
	}
	return nil
}

// Close closes the pubsub; further publishes and subscribes fail.
func (ps *MemoryPubSub) Close() error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	ps.closed = true
	ps.subscriptions = make(map[string]map[string]MessageHandler)
	return nil
}
