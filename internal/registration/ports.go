package registration

import (
	"context"
	"errors"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// ErrAdapterDisabled marks an adapter that is not configured. The
// orchestrator records it as skipped rather than failed.
var ErrAdapterDisabled = errors.New("adapter disabled")

// Store persists accepted registrations.
type Store interface {
	Insert(ctx context.Context, reg *Registration) error
}

// Spreadsheet appends a registration row to the external sheet.
type Spreadsheet interface {
	Append(ctx context.Context, reg *Registration) error
}

// Notifier sends confirmation emails.
type Notifier interface {
	NotifyApplicant(ctx context.Context, reg *Registration) error
	NotifyOrganizer(ctx context.Context, reg *Registration) error
}

// AlertPublisher emits an operational alert for each accepted registration.
type AlertPublisher interface {
	PublishAccepted(ctx context.Context, reg *Registration) error
}

type disabledSpreadsheet struct{}

func (disabledSpreadsheet) Append(context.Context, *Registration) error { return ErrAdapterDisabled }

type disabledNotifier struct{}

func (disabledNotifier) NotifyApplicant(context.Context, *Registration) error {
	return ErrAdapterDisabled
}

func (disabledNotifier) NotifyOrganizer(context.Context, *Registration) error {
	return ErrAdapterDisabled
}

type disabledAlerts struct{}

func (disabledAlerts) PublishAccepted(context.Context, *Registration) error {
	return ErrAdapterDisabled
}
