package store

import (
	"context"
	"sort"
	"sync"

	"symposium/internal/registration"
)

// InMemory keeps registrations in process memory. Used by tests.
type InMemory struct {
	mu   sync.RWMutex
	regs []*registration.Registration
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Insert(_ context.Context, reg *registration.Registration) error {
	cp := *reg
	cp.SelectedEvents = append([]string(nil), reg.SelectedEvents...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs = append(s.regs, &cp)
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*registration.Registration, error) {
	s.mu.RLock()
	out := make([]*registration.Registration, len(s.regs))
	copy(out, s.regs)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

func (s *InMemory) Ping(context.Context) error { return nil }

func (s *InMemory) Close() error { return nil }
