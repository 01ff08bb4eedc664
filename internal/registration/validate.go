package registration

import (
	"regexp"
	"strings"
)

// emailPattern accepts local@domain.tld with no whitespace and a single @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validation messages.
const (
	msgRequired      = "is required"
	msgInvalidEmail  = "invalid email format"
	msgNoEventChosen = "select at least one event"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every rejected field of a submission in form order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Fields maps field name to message.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		out[fe.Field] = fe.Message
	}
	return out
}

// Has reports whether field was rejected.
func (v ValidationErrors) Has(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate checks a submission. It is pure and deterministic; callers
// normalize first if they want trimming applied to stored values.
func Validate(s Submission) error {
	var errs ValidationErrors

	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: field + " " + msgRequired})
		}
	}

	required("name", s.Name)
	switch {
	case strings.TrimSpace(s.Email) == "":
		errs = append(errs, FieldError{Field: "email", Message: "email " + msgRequired})
	case !emailPattern.MatchString(s.Email):
		errs = append(errs, FieldError{Field: "email", Message: msgInvalidEmail})
	}
	required("phone", s.Phone)
	required("college", s.College)
	required("department", s.Department)
	required("yearOfStudy", s.YearOfStudy)

	if len(s.SelectedEvents) == 0 {
		errs = append(errs, FieldError{Field: "selectedEvents", Message: msgNoEventChosen})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
