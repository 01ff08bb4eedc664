package sheets

import (
	"strings"
	"time"

	"symposium/internal/catalog"
	"symposium/internal/registration"
)

// TimestampLayout is parsed as a date-time by Sheets under USER_ENTERED.
const TimestampLayout = "2006-01-02 15:04:05"

// Columns is the header row the sheet is expected to carry.
var Columns = []string{
	"Timestamp", "Name", "Email", "Phone", "College", "Department", "Year of Study", "Selected Events",
}

// Row renders reg as one sheet row in Columns order. Event ids resolve to
// display names through cat and are joined with ", ".
func Row(reg *registration.Registration, cat *catalog.Catalog, loc *time.Location) []any {
	if loc == nil {
		loc = time.UTC
	}
	return []any{
		reg.RegisteredAt.In(loc).Format(TimestampLayout),
		cell(reg.Name),
		cell(reg.Email),
		cell(reg.Phone),
		cell(reg.College),
		cell(reg.Department),
		cell(reg.YearOfStudy),
		cell(strings.Join(cat.Names(reg.SelectedEvents), ", ")),
	}
}

// cell keeps applicant text literal. With USER_ENTERED a leading '=', '+',
// '-' or '@' would be evaluated as a formula; a leading apostrophe makes
// Sheets store the rest as plain text.
func cell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@':
		return "'" + v
	}
	return v
}
