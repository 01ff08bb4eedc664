package registration

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"symposium/internal/registration/metrics"
	"symposium/pkg/requestcontext"
)

// Dispatch decides whether Register waits for the spreadsheet, email and
// alert side effects.
type Dispatch int

const (
	// DispatchDetach runs side effects in the background after responding.
	DispatchDetach Dispatch = iota
	// DispatchAwait runs side effects concurrently and waits for all of them.
	DispatchAwait
)

const defaultDetachedTimeout = 30 * time.Second

// Service orchestrates a registration: validate, persist, then fan out to
// the spreadsheet, email and alert adapters. Only validation can fail a
// submission; every later failure ends as a logged Outcome.
type Service struct {
	store    Store
	sheets   Spreadsheet
	notifier Notifier
	alerts   AlertPublisher

	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          trace.Tracer
	dispatch        Dispatch
	detachedTimeout time.Duration

	// mu orders inflight.Add against Drain; once draining, nothing detaches.
	mu       sync.Mutex
	draining bool
	inflight sync.WaitGroup
}

type Option func(*Service)

func WithSpreadsheet(sheets Spreadsheet) Option {
	return func(s *Service) {
		s.sheets = sheets
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(s *Service) {
		s.notifier = notifier
	}
}

func WithAlerts(alerts AlertPublisher) Option {
	return func(s *Service) {
		s.alerts = alerts
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithDispatch(d Dispatch) Option {
	return func(s *Service) {
		s.dispatch = d
	}
}

// WithDetachedTimeout bounds background side effects, which no longer have
// the request deadline.
func WithDetachedTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.detachedTimeout = d
		}
	}
}

// NewService builds the orchestrator. Adapters not supplied are treated as disabled.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("registration store is required")
	}

	svc := &Service{
		store:           store,
		sheets:          disabledSpreadsheet{},
		notifier:        disabledNotifier{},
		alerts:          disabledAlerts{},
		logger:          slog.New(slog.DiscardHandler),
		tracer:          otel.Tracer("symposium/internal/registration"),
		detachedTimeout: defaultDetachedTimeout,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

type task struct {
	adapter string
	fn      func(context.Context, *Registration) error
}

// Register validates sub and, if valid, records it everywhere it is
// configured to go. The returned error is always ValidationErrors.
func (s *Service) Register(ctx context.Context, sub Submission) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "registration.Register")
	defer span.End()
	requestID := requestcontext.RequestID(ctx)

	sub.Normalize()
	if err := Validate(sub); err != nil {
		s.metrics.IncrementSubmission("rejected")
		span.SetStatus(codes.Error, "validation failed")
		s.logger.InfoContext(ctx, "registration rejected",
			"request_id", requestID,
			"error", err,
		)
		return nil, err
	}

	reg := NewRegistration(sub, requestcontext.Now(ctx))
	span.SetAttributes(
		attribute.String("registration.id", reg.ID.String()),
		attribute.Int("registration.events", len(reg.SelectedEvents)),
	)
	result := &Result{Registration: reg}

	// Persistence runs first so the export reflects the submission as soon
	// as the client sees success.
	result.Outcomes = append(result.Outcomes, s.run(ctx, reg, task{AdapterStore, s.store.Insert}))

	tasks := []task{
		{AdapterSheets, s.sheets.Append},
		{AdapterApplicant, s.notifier.NotifyApplicant},
		{AdapterOrganizer, s.notifier.NotifyOrganizer},
		{AdapterAlert, s.alerts.PublishAccepted},
	}
	switch s.dispatch {
	case DispatchAwait:
		result.Outcomes = append(result.Outcomes, s.runAll(ctx, reg, tasks)...)
	default:
		result.Outcomes = append(result.Outcomes, s.detach(ctx, reg, tasks)...)
	}

	s.metrics.IncrementSubmission("accepted")
	s.logger.InfoContext(ctx, "registration accepted",
		"request_id", requestID,
		"registration_id", reg.ID,
		"events", len(reg.SelectedEvents),
	)
	return result, nil
}

// Drain waits for detached side effects to finish or ctx to expire.
// Registrations arriving after Drain has started run their side effects
// before returning instead of detaching.
func (s *Service) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) runAll(ctx context.Context, reg *Registration, tasks []task) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	var g errgroup.Group
	for i, t := range tasks {
		g.Go(func() error {
			outcomes[i] = s.run(ctx, reg, t)
			return nil
		})
	}
	// run never returns an error; outcomes carry them.
	_ = g.Wait()
	return outcomes
}

// detach runs tasks in the background and returns no outcomes, unless the
// service is draining, in which case it runs them inline.
func (s *Service) detach(ctx context.Context, reg *Registration, tasks []task) []Outcome {
	// Keep request-scoped values (request id) but drop the request's cancellation.
	bg := context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		bg, cancel := context.WithTimeout(bg, s.detachedTimeout)
		defer cancel()
		return s.runAll(bg, reg, tasks)
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		bg, cancel := context.WithTimeout(bg, s.detachedTimeout)
		defer cancel()
		s.runAll(bg, reg, tasks)
	}()
	return nil
}

// run executes one side effect and converts whatever happens, including a
// panic, into an Outcome.
func (s *Service) run(ctx context.Context, reg *Registration, t task) (out Outcome) {
	ctx, span := s.tracer.Start(ctx, "registration."+t.adapter)
	defer span.End()
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			out = newOutcome(t.adapter, fmt.Errorf("panic: %v", rec), time.Since(start))
			s.logger.ErrorContext(ctx, "side effect panicked",
				"request_id", requestcontext.RequestID(ctx),
				"registration_id", reg.ID,
				"adapter", t.adapter,
				"stack", string(debug.Stack()),
			)
		}
		if out.Status == StatusFailed {
			span.RecordError(out.Err)
			span.SetStatus(codes.Error, out.Err.Error())
		}
		s.record(ctx, reg, out)
	}()

	err := t.fn(ctx, reg)
	return newOutcome(t.adapter, err, time.Since(start))
}

func (s *Service) record(ctx context.Context, reg *Registration, o Outcome) {
	s.metrics.ObserveSideEffect(o.Adapter, string(o.Status), o.Duration)

	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"registration_id", reg.ID,
		"adapter", o.Adapter,
		"duration_ms", o.Duration.Milliseconds(),
	}
	switch o.Status {
	case StatusOK:
		s.logger.InfoContext(ctx, "side effect completed", attrs...)
	case StatusSkipped:
		s.logger.InfoContext(ctx, "side effect skipped", append(attrs, "reason", o.Err)...)
	default:
		s.logger.ErrorContext(ctx, "side effect failed", append(attrs, "error", o.Err)...)
	}
}
