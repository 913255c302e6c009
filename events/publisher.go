package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/theoremus-urban-solutions/trainjatri/utils"
)

// Subjects published by this service.
const (
	SubjectConfirm       = "trainjatri.crowd.confirm"
	SubjectStatusRequest = "trainjatri.status.request"
)

// Publisher emits service events over NATS. A nil *Publisher is valid and
// publishes nothing.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server. An empty URL disables publishing and
// returns a nil publisher.
func Connect(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := nats.Connect(url,
		nats.Name("trainjatri"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Printf("nats reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// PublishConfirmation reports a crowd confirmation. Failures are logged,
// never returned; events must not fail the request that produced them.
func (p *Publisher) PublishConfirmation(trainNumber, userID, stationName string) {
	p.publish(SubjectConfirm, map[string]string{
		"train_number": trainNumber,
		"user_id":      userID,
		"station_name": stationName,
		"timestamp":    utils.Iso8601(time.Now()),
	})
}

// PublishStatusRequest reports that a live status was served.
func (p *Publisher) PublishStatusRequest(trainNumber string, delayMinutes int) {
	p.publish(SubjectStatusRequest, map[string]any{
		"train_number":  trainNumber,
		"delay_minutes": delayMinutes,
		"timestamp":     utils.Iso8601(time.Now()),
	})
}

func (p *Publisher) publish(subject string, payload any) {
	if p == nil || p.conn == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("encoding %s event: %v", subject, err)
		return
	}
	if err := p.conn.Publish(subject, raw); err != nil {
		log.Printf("publishing %s event: %v", subject, err)
	}
}

// Close drains the connection so buffered events flush before shutdown.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
