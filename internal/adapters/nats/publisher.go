package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Jeong-wonho/heremap-start/internal/core/domain"
)

// Subjects carry the session id as their last token.
const (
	SubjectPanel  = "mapview.panel"
	SubjectNotify = "mapview.notify"
)

// Publisher implements ports.PanelFeed using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	// Ensure streams exist
	streams := []nats.StreamConfig{
		{
			Name:      "MAPVIEW_PANELS",
			Subjects:  []string{SubjectPanel + ".>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "MAPVIEW_NOTIFICATIONS",
			Subjects:  []string{SubjectNotify + ".>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist, try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishPanel mirrors a session's panel view-model.
func (p *Publisher) PublishPanel(ctx context.Context, sessionID string, vm domain.PanelViewModel) error {
	data, err := json.Marshal(vm)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectPanel+"."+sessionID, data, nats.Context(ctx))
	return err
}

// PublishNotification mirrors a session's user-visible notification.
func (p *Publisher) PublishNotification(ctx context.Context, sessionID string, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectNotify+"."+sessionID, data, nats.Context(ctx))
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("heremap"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
