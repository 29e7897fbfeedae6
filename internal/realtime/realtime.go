// Package realtime consumes the hosted pub/sub channels used for direct
// chat: per chat pair one channel for messages and one for typing
// indicators. Delivery, reconnection and ordering are the pub/sub client's
// concern; this package only subscribes, decodes and dispatches.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gatherly/internal/store"

	"github.com/redis/go-redis/v9"
)

// ChatMessage is the wire payload on a message channel.
type ChatMessage struct {
	ChatID   string    `json:"chat_id"`
	SenderID string    `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

// TypingEvent is the wire payload on a typing channel.
type TypingEvent struct {
	ChatID string `json:"chat_id"`
	UserID string `json:"user_id"`
	Typing bool   `json:"typing"`
}

// PairKey is the canonical channel key for an unordered user pair.
func PairKey(a, b string) string {
	a, b = store.NormalizePair(a, b)
	return a + ":" + b
}

func messageChannel(pairKey string) string {
	return fmt.Sprintf("chat:%s:messages", pairKey)
}

func typingChannel(pairKey string) string {
	return fmt.Sprintf("chat:%s:typing", pairKey)
}

// Subscriber subscribes to chat channels and dispatches decoded payloads.
type Subscriber struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewSubscriber returns a Subscriber over the given redis client.
func NewSubscriber(rdb *redis.Client, log *slog.Logger) *Subscriber {
	return &Subscriber{rdb: rdb, log: log}
}

// Subscription is one active pair subscription. Close it on screen
// teardown.
type Subscription struct {
	pubsub *redis.PubSub
	done   chan struct{}
}

// Close unsubscribes from both channels and stops the dispatch goroutine.
func (s *Subscription) Close() error {
	err := s.pubsub.Close()
	<-s.done
	return err
}

// Subscribe starts listening on the message and typing channels for the
// pair (a, b). Callbacks run on the dispatch goroutine; nil callbacks are
// allowed and skip dispatch for that channel. Malformed payloads are logged
// and dropped.
func (s *Subscriber) Subscribe(ctx context.Context, a, b string, onMessage func(ChatMessage), onTyping func(TypingEvent)) (*Subscription, error) {
	pair := PairKey(a, b)
	msgCh := messageChannel(pair)
	typCh := typingChannel(pair)

	pubsub := s.rdb.Subscribe(ctx, msgCh, typCh)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", pair, err)
	}

	sub := &Subscription{pubsub: pubsub, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		for msg := range pubsub.Channel() {
			switch msg.Channel {
			case msgCh:
				if onMessage == nil {
					continue
				}
				var payload ChatMessage
				if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
					s.log.Warn("dropping malformed chat message",
						slog.String("channel", msg.Channel),
						slog.String("error", err.Error()),
					)
					continue
				}
				onMessage(payload)
			case typCh:
				if onTyping == nil {
					continue
				}
				var payload TypingEvent
				if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
					s.log.Warn("dropping malformed typing event",
						slog.String("channel", msg.Channel),
						slog.String("error", err.Error()),
					)
					continue
				}
				onTyping(payload)
			}
		}
	}()

	return sub, nil
}

// Publisher publishes chat payloads for the sending side.
type Publisher struct {
	rdb *redis.Client
}

// NewPublisher returns a Publisher over the given redis client.
func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// PublishMessage publishes a chat message on the pair's message channel.
func (p *Publisher) PublishMessage(ctx context.Context, a, b string, msg ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, messageChannel(PairKey(a, b)), payload).Err()
}

// PublishTyping publishes a typing indicator on the pair's typing channel.
func (p *Publisher) PublishTyping(ctx context.Context, a, b string, ev TypingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, typingChannel(PairKey(a, b)), payload).Err()
}
