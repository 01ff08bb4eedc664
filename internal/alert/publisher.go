package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"symposium/internal/catalog"
	"symposium/internal/platform/config"
	"symposium/internal/registration"
	pkgstrings "symposium/pkg/platform/strings"
	"symposium/pkg/requestcontext"
)

// EventType is stamped on every record as the event_type header.
const EventType = "registration.accepted"

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

var _ Producer = (*kgo.Client)(nil)

// payload is the JSON value of an alert record.
type payload struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	College      string   `json:"college"`
	Events       []string `json:"events"`
	RegisteredAt string   `json:"registered_at"`
}

// Publisher emits one record per accepted registration so organizers can
// follow sign-ups live. It implements registration.AlertPublisher.
type Publisher struct {
	producer Producer
	topic    string
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher wraps an existing producer. A nil producer yields a disabled
// publisher.
func NewPublisher(producer Producer, topic string, cat *catalog.Catalog, opts ...Option) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		catalog:  cat,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewClient connects a franz-go client for cfg. It returns nil, nil when no
// brokers are configured.
func NewClient(cfg config.AlertConfig) (*kgo.Client, error) {
	brokers := pkgstrings.DedupeAndTrim(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, nil
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.AllowAutoTopicCreation(),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

func (p *Publisher) Enabled() bool {
	return p.producer != nil && p.topic != ""
}

// PublishAccepted writes reg to the alert topic keyed by registration id.
func (p *Publisher) PublishAccepted(ctx context.Context, reg *registration.Registration) error {
	if !p.Enabled() {
		return fmt.Errorf("kafka brokers not configured: %w", registration.ErrAdapterDisabled)
	}

	record, err := p.record(ctx, reg)
	if err != nil {
		return err
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish registration alert: %w", err)
	}
	p.logger.DebugContext(ctx, "registration alert published",
		"registration_id", reg.ID.String(),
		"topic", p.topic,
	)
	return nil
}

func (p *Publisher) record(ctx context.Context, reg *registration.Registration) (*kgo.Record, error) {
	value, err := json.Marshal(payload{
		ID:           reg.ID.String(),
		Name:         reg.Name,
		Email:        reg.Email,
		College:      reg.College,
		Events:       p.catalog.Names(reg.SelectedEvents),
		RegisteredAt: reg.RegisteredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal alert payload: %w", err)
	}

	headers := []kgo.RecordHeader{{Key: "event_type", Value: []byte(EventType)}}
	if id := requestcontext.RequestID(ctx); id != "" {
		headers = append(headers, kgo.RecordHeader{Key: "request_id", Value: []byte(id)})
	}
	return &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(reg.ID.String()),
		Value:   value,
		Headers: headers,
	}, nil
}
