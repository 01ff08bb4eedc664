package registration

import (
	"errors"
	"time"
)

// Adapter names used in outcomes, logs and metrics.
const (
	AdapterStore     = "store"
	AdapterSheets    = "sheets"
	AdapterApplicant = "email_applicant"
	AdapterOrganizer = "email_organizer"
	AdapterAlert     = "alert"
)

// Status is how one side effect ended.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the result of one side effect. Failures stop here: they are
// logged and counted, never returned to the caller of Register.
type Outcome struct {
	Adapter  string
	Status   Status
	Err      error
	Duration time.Duration
}

func newOutcome(adapter string, err error, d time.Duration) Outcome {
	o := Outcome{Adapter: adapter, Status: StatusOK, Err: err, Duration: d}
	switch {
	case err == nil:
	case errors.Is(err, ErrAdapterDisabled):
		o.Status = StatusSkipped
	default:
		o.Status = StatusFailed
	}
	return o
}

// Result is what Register returns for an accepted submission.
type Result struct {
	Registration *Registration
	// Outcomes holds every side effect that finished before Register
	// returned. Detached effects are not included.
	Outcomes []Outcome
}

// Outcome returns the outcome for adapter, if it finished before Register returned.
func (r *Result) Outcome(adapter string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Adapter == adapter {
			return o, true
		}
	}
	return Outcome{}, false
}
