package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"symposium/internal/catalog"
	"symposium/internal/platform/config"
	"symposium/internal/registration"
	"symposium/pkg/requestcontext"
)

const keyPrefixLen = 12

// ValuesClient appends one row to a spreadsheet range.
type ValuesClient interface {
	AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []any) error
}

// ClientFactory builds a ValuesClient from service-account credentials.
type ClientFactory func(email, privateKey string) (ValuesClient, error)

// Appender writes registrations to a Google Sheet. It implements
// registration.Spreadsheet.
type Appender struct {
	cfg       config.SheetsConfig
	catalog   *catalog.Catalog
	logger    *slog.Logger
	location  *time.Location
	newClient ClientFactory

	mu     sync.Mutex
	client ValuesClient
}

type Option func(*Appender)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Appender) {
		a.logger = logger
	}
}

// WithLocation sets the timezone of the timestamp column.
func WithLocation(loc *time.Location) Option {
	return func(a *Appender) {
		a.location = loc
	}
}

func WithClientFactory(f ClientFactory) Option {
	return func(a *Appender) {
		a.newClient = f
	}
}

func New(cfg config.SheetsConfig, cat *catalog.Catalog, opts ...Option) *Appender {
	a := &Appender{
		cfg:       cfg,
		catalog:   cat,
		logger:    slog.New(slog.DiscardHandler),
		location:  time.UTC,
		newClient: NewGoogleClientFactory(google.JWTTokenURL),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg.SheetName == "" {
		a.cfg.SheetName = "Sheet1"
	}
	return a
}

// Enabled reports whether all three credentials are present.
func (a *Appender) Enabled() bool {
	return a.cfg.SpreadsheetID != "" && a.cfg.ServiceAccountEmail != "" && a.cfg.PrivateKey != ""
}

func (a *Appender) writeRange() string {
	return a.cfg.SheetName + "!A:H"
}

// Append adds reg as a new row. Missing or malformed credentials are
// reported as registration.ErrAdapterDisabled so the submission is not
// counted as a sheet failure.
func (a *Appender) Append(ctx context.Context, reg *registration.Registration) error {
	if !a.Enabled() {
		return fmt.Errorf("google sheets credentials not configured: %w", registration.ErrAdapterDisabled)
	}

	client, err := a.valuesClient()
	if err != nil {
		return err
	}

	row := Row(reg, a.catalog, a.location)
	if err := client.AppendRow(ctx, a.cfg.SpreadsheetID, a.writeRange(), row); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("append sheet row: status %d: %w", apiErr.Code, err)
		}
		return fmt.Errorf("append sheet row: %w", err)
	}
	a.logger.InfoContext(ctx, "google sheets row appended",
		"request_id", requestcontext.RequestID(ctx),
		"registration_id", reg.ID.String(),
		"range", a.writeRange(),
	)
	return nil
}

// valuesClient builds the API client on first use. Failures are returned,
// not logged; the caller records the outcome.
func (a *Appender) valuesClient() (ValuesClient, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	key, err := NormalizePrivateKey(a.cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("google sheets private key (prefix %q): %w: %w",
			KeyPrefix(key, keyPrefixLen), registration.ErrAdapterDisabled, err)
	}

	client, err := a.newClient(a.cfg.ServiceAccountEmail, key)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	a.client = client
	return client, nil
}

// NewGoogleClientFactory returns a ClientFactory that authenticates with the
// service-account JWT flow against tokenURL.
func NewGoogleClientFactory(tokenURL string, opts ...option.ClientOption) ClientFactory {
	return func(email, privateKey string) (ValuesClient, error) {
		conf := &jwt.Config{
			Email:      email,
			PrivateKey: []byte(privateKey),
			Scopes:     []string{gsheets.SpreadsheetsScope},
			TokenURL:   tokenURL,
		}
		// The token source outlives any single request.
		ctx := context.Background()
		clientOpts := append([]option.ClientOption{option.WithTokenSource(conf.TokenSource(ctx))}, opts...)
		svc, err := gsheets.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, err
		}
		return &googleValues{values: svc.Spreadsheets.Values}, nil
	}
}

type googleValues struct {
	values *gsheets.SpreadsheetsValuesService
}

func (g *googleValues) AppendRow(ctx context.Context, spreadsheetID, writeRange string, row []any) error {
	_, err := g.values.Append(spreadsheetID, writeRange, &gsheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
