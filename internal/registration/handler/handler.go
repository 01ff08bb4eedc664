package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"symposium/internal/catalog"
	"symposium/internal/registration"
	dErrors "symposium/pkg/domain-errors"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
)

// Registrar runs the registration pipeline.
type Registrar interface {
	Register(ctx context.Context, sub registration.Submission) (*registration.Result, error)
}

// Lister reads every stored registration, newest first.
type Lister interface {
	List(ctx context.Context) ([]*registration.Registration, error)
}

// Handler serves the registration, export and event catalog endpoints.
type Handler struct {
	registrar Registrar
	lister    Lister
	catalog   *catalog.Catalog
	logger    *slog.Logger
	location  *time.Location
}

type Option func(*Handler)

// WithLocation sets the timezone export timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(h *Handler) {
		h.location = loc
	}
}

func New(registrar Registrar, lister Lister, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		registrar: registrar,
		lister:    lister,
		catalog:   cat,
		logger:    logger,
		location:  time.UTC,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterResponse is the 200 body of POST /api/register.
type RegisterResponse struct {
	Message string       `json:"message"`
	Data    RegisterData `json:"data"`
}

type RegisterData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleRegister accepts a registration form submission.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var sub registration.Submission
	if err := httputil.DecodeJSON(r, &sub); err != nil {
		h.logger.WarnContext(ctx, "invalid registration request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.registrar.Register(ctx, sub)
	if err != nil {
		var verrs registration.ValidationErrors
		if !errors.As(err, &verrs) {
			h.logger.ErrorContext(ctx, "registration failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, RegisterResponse{
		Message: "Registration successful",
		Data: RegisterData{
			Name:  result.Registration.Name,
			Email: result.Registration.Email,
		},
	})
}

type eventsResponse struct {
	Data []catalog.Event `json:"data"`
}

type eventResponse struct {
	Data catalog.Event `json:"data"`
}

// HandleListEvents returns the whole catalog.
func (h *Handler) HandleListEvents(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, eventsResponse{Data: h.catalog.Events()})
}

// HandleGetEvent returns one event by slug.
func (h *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := h.catalog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "Event not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, eventResponse{Data: event})
}
