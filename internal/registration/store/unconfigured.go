package store

import (
	"context"
	"fmt"

	"symposium/internal/registration"
	"symposium/pkg/platform/sentinel"
)

// Unconfigured stands in when no database URL is set. Inserts are reported
// as a disabled adapter; reads fail with sentinel.ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) Insert(context.Context, *registration.Registration) error {
	return fmt.Errorf("%w: database not configured", registration.ErrAdapterDisabled)
}

func (Unconfigured) List(context.Context) ([]*registration.Registration, error) {
	return nil, fmt.Errorf("list registrations: %w", sentinel.ErrNotConfigured)
}

func (Unconfigured) Ping(context.Context) error {
	return sentinel.ErrNotConfigured
}

func (Unconfigured) Close() error { return nil }
