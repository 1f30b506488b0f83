package sitepubsub

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/indyavik/theme-1-multi-site/common"
)

// RedisPubSub implements the PubSub interface over redis channels, for
// hosting surfaces that run out of process.
type RedisPubSub struct {
	client        *redis.Client
	options       *Options
	logger        zerolog.Logger
	mutex         sync.Mutex
	subscriptions map[string]*redisSubscription
	closed        bool
}

type redisSubscription struct {
	topic        string
	subscriberID string
	pubsub       *redis.PubSub
	cancel       context.CancelFunc
	done         chan struct{}
}

func subscriptionKey(topic, subscriberID string) string {
	return topic + "|" + subscriberID
}

// NewRedisPubSub creates a RedisPubSub with the given client, verifying
// connectivity.
func NewRedisPubSub(client *redis.Client, options *Options, logger zerolog.Logger) (*RedisPubSub, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if options == nil {
		options = NewOptions()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return &RedisPubSub{
		client:        client,
		options:       options,
		logger:        logger,
		subscriptions: make(map[string]*redisSubscription),
	}, nil
}

func (ps *RedisPubSub) publish(ctx context.Context, topic string, v any) error {
	ps.mutex.Lock()
	closed := ps.closed
	ps.mutex.Unlock()
	if closed {
		return common.ErrClosed
	}

	codec, err := GetEncoderDecoder(ps.options.DefaultFormat)
	if err != nil {
		return err
	}
	payload, err := codec.Encode(v)
	if err != nil {
		return err
	}
	if err := ps.client.Publish(ctx, topic, payload).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish to %s", topic)
	}
	return nil
}

// PublishEvent publishes an event to the topic.
func (ps *RedisPubSub) PublishEvent(ctx context.Context, topic string, ev EditorEvent) error {
	return ps.publish(ctx, topic, ev)
}

// PublishCommand publishes a command to the topic.
func (ps *RedisPubSub) PublishCommand(ctx context.Context, topic string, cmd EditorCommand) error {
	return ps.publish(ctx, topic, cmd)
}

// Subscribe registers a handler for the topic under subscriberID. Messages
// are delivered on a background goroutine until Unsubscribe or Close.
func (ps *RedisPubSub) Subscribe(ctx context.Context, topic string, subscriberID string, handler MessageHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	if ps.closed {
		return common.ErrClosed
	}
	key := subscriptionKey(topic, subscriberID)
	if _, exists := ps.subscriptions[key]; exists {
		return errors.Errorf("already subscribed to %s as %s", topic, subscriberID)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	pubsub := ps.client.Subscribe(subCtx, topic)
	sub := &redisSubscription{
		topic:        topic,
		subscriberID: subscriberID,
		pubsub:       pubsub,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	ps.subscriptions[key] = sub

	go ps.receive(subCtx, sub, handler)
	return nil
}

func (ps *RedisPubSub) receive(ctx context.Context, sub *redisSubscription, handler MessageHandler) {
	defer close(sub.done)
	ch := sub.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg := Message{
				Topic:   sub.topic,
				Payload: []byte(m.Payload),
				Format:  ps.options.DefaultFormat,
			}
			if err := handler(ctx, msg); err != nil {
				ps.logger.Warn().
					Err(err).
					Str("topic", sub.topic).
					Str("subscriber", sub.subscriberID).
					Msg("message handler failed")
			}
		}
	}
}

// Unsubscribe removes the subscriberID's handler for the topic.
func (ps *RedisPubSub) Unsubscribe(ctx context.Context, topic string, subscriberID string) error {
	ps.mutex.Lock()
	key := subscriptionKey(topic, subscriberID)
	sub, ok := ps.subscriptions[key]
	if ok {
		delete(ps.subscriptions, key)
	}
	ps.mutex.Unlock()

	if !ok {
		return nil
	}
	sub.cancel()
	if err := sub.pubsub.Close(); err != nil {
		return errors.Wrapf(err, "failed to close subscription for %s", topic)
	}
	<-sub.done
	return nil
}

// Close closes every subscription and marks the pubsub closed.
func (ps *RedisPubSub) Close() error {
	ps.mutex.Lock()
	if ps.closed {
		ps.mutex.Unlock()
		return nil
	}
	ps.closed = true
	subs := make([]*redisSubscription, 0, len(ps.subscriptions))
	for _, sub := range ps.subscriptions {
		subs = append(subs, sub)
	}
	ps.subscriptions = make(map[string]*redisSubscription)
	ps.mutex.Unlock()

	var firstErr error
	for _, sub := range subs {
		sub.cancel()
		if err := sub.pubsub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		<-sub.done
	}
	return firstErr
}
