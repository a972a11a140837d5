package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// Subscriber consumes the panel and notification streams.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS with JetStream enabled.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SessionOf extracts the session id from a mapview subject.
func SessionOf(subject string) string {
	if i := strings.LastIndexByte(subject, '.'); i >= 0 {
		return subject[i+1:]
	}
	return subject
}

func (s *Subscriber) SubscribePanels(ctx context.Context, durable string, handler func(ctx context.Context, sessionID string, vm domain.PanelViewModel) error) error {
	sub, err := s.js.Subscribe(SubjectPanel+".>", func(msg *nats.Msg) {
		var vm domain.PanelViewModel
		if err := json.Unmarshal(msg.Data, &vm); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, SessionOf(msg.Subject), vm); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *Subscriber) SubscribeNotifications(ctx context.Context, durable string, handler func(ctx context.Context, sessionID string, n domain.Notification) error) error {
	sub, err := s.js.Subscribe(SubjectNotify+".>", func(msg *nats.Msg) {
		var n domain.Notification
		if err := json.Unmarshal(msg.Data, &n); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, SessionOf(msg.Subject), n); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	},
		nats.Durable(durable+"-notify"),
		nats.ManualAck(),
		nats.MaxDeliver(3),
	)
	if err != nil {
		return err
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
