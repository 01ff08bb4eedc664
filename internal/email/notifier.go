package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"symposium/internal/catalog"
	"symposium/internal/platform/config"
	"symposium/internal/registration"
)

// Notifier sends applicant and organizer confirmations. It implements
// registration.Notifier.
type Notifier struct {
	cfg      config.EmailConfig
	catalog  *catalog.Catalog
	client   *Client
	logger   *slog.Logger
	location *time.Location
}

type Option func(*Notifier)

func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithLocation sets the timezone registration times are shown in.
func WithLocation(loc *time.Location) Option {
	return func(n *Notifier) {
		n.location = loc
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.client = NewClient(n.cfg.APIURL, n.cfg.APIKey, c)
	}
}

func New(cfg config.EmailConfig, cat *catalog.Catalog, opts ...Option) *Notifier {
	n := &Notifier{
		cfg:      cfg,
		catalog:  cat,
		client:   NewClient(cfg.APIURL, cfg.APIKey, nil),
		logger:   slog.New(slog.DiscardHandler),
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Enabled reports whether an API key is configured.
func (n *Notifier) Enabled() bool {
	return n.cfg.APIKey != ""
}

func (n *Notifier) from() string {
	if n.cfg.FromName == "" {
		return n.cfg.From
	}
	return fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.From)
}

func (n *Notifier) symposium() string {
	if n.cfg.FromName == "" {
		return "the symposium"
	}
	return n.cfg.FromName
}

// NotifyApplicant confirms the registration to the applicant.
func (n *Notifier) NotifyApplicant(ctx context.Context, reg *registration.Registration) error {
	if !n.Enabled() {
		return fmt.Errorf("email api key not configured: %w", registration.ErrAdapterDisabled)
	}
	return n.send(ctx, "applicant", Message{
		From:    n.from(),
		To:      []string{reg.Email},
		ReplyTo: n.cfg.OrganizerEmail,
		Subject: fmt.Sprintf("Registration confirmed: %s", n.symposium()),
	}, reg)
}

// NotifyOrganizer forwards the registration to the organizer inbox.
func (n *Notifier) NotifyOrganizer(ctx context.Context, reg *registration.Registration) error {
	if !n.Enabled() {
		return fmt.Errorf("email api key not configured: %w", registration.ErrAdapterDisabled)
	}
	if n.cfg.OrganizerEmail == "" {
		n.logger.WarnContext(ctx, "organizer email not configured, skipping organizer notification",
			"registration_id", reg.ID.String(),
		)
		return fmt.Errorf("organizer email not configured: %w", registration.ErrAdapterDisabled)
	}
	return n.send(ctx, "organizer", Message{
		From:    n.from(),
		To:      []string{n.cfg.OrganizerEmail},
		ReplyTo: reg.Email,
		Subject: fmt.Sprintf("New registration: %s", reg.Name),
	}, reg)
}

func (n *Notifier) send(ctx context.Context, template string, msg Message, reg *registration.Registration) error {
	html, text, err := render(template, newView(n.symposium(), reg, n.catalog, n.location))
	if err != nil {
		return err
	}
	msg.HTML, msg.Text = html, text

	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send %s email: %w", template, err)
	}
	n.logger.InfoContext(ctx, "email sent",
		"template", template,
		"registration_id", reg.ID.String(),
		"message_id", id,
	)
	return nil
}
