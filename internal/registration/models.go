package registration

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgstrings "symposium/pkg/platform/strings"
)

// Submission is the payload a client posts to register. Nothing in it is
// trusted until Validate passes.
type Submission struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	College        string   `json:"college"`
	Department     string   `json:"department"`
	YearOfStudy    string   `json:"yearOfStudy"`
	SelectedEvents []string `json:"selectedEvents"`
}

// Normalize trims every field and drops blank or repeated event ids,
// keeping first-seen order.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.College = strings.TrimSpace(s.College)
	s.Department = strings.TrimSpace(s.Department)
	s.YearOfStudy = strings.TrimSpace(s.YearOfStudy)

	s.SelectedEvents = pkgstrings.DedupeAndTrim(s.SelectedEvents)
}

// Registration is an accepted submission. It is written once and never
// updated or deleted by this service.
type Registration struct {
	ID             uuid.UUID
	Name           string
	Email          string
	Phone          string
	College        string
	Department     string
	YearOfStudy    string
	SelectedEvents []string
	RegisteredAt   time.Time
}

// NewRegistration builds a Registration from a validated submission.
func NewRegistration(s Submission, registeredAt time.Time) *Registration {
	events := make([]string, len(s.SelectedEvents))
	copy(events, s.SelectedEvents)
	return &Registration{
		ID:             uuid.New(),
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		College:        s.College,
		Department:     s.Department,
		YearOfStudy:    s.YearOfStudy,
		SelectedEvents: events,
		RegisteredAt:   registeredAt.UTC(),
	}
}
