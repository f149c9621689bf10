package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// NewNATS constructs a publisher that writes each event to subject.<type>.
func NewNATS(log *slog.Logger, nc *nats.Conn, subject string) Publisher {
	return &natsPublisher{log: log, nc: nc, subject: subject}
}

type natsPublisher struct {
	log     *slog.Logger
	nc      *nats.Conn
	subject string
}

func (p *natsPublisher) Publish(_ context.Context, ev Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.Type == "" {
		return errors.New("event type required")
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(Subject(p.subject, ev.Type), body)
}

func (p *natsPublisher) Close() error {
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("nats drain failed", "err", err)
		p.nc.Close()
		return err
	}
	return nil
}

// Subject joins the configured prefix and event type.
func Subject(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}
