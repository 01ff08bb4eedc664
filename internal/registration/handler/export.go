package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"symposium/internal/registration"
	dErrors "symposium/pkg/domain-errors"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
)

// exportTimeLayout renders registration times the way a US-locale
// spreadsheet shows them.
const exportTimeLayout = "1/2/2006, 3:04:05 PM"

var exportHeader = []string{
	"Name",
	"Email",
	"Phone",
	"College",
	"Department",
	"Year of Study",
	"Selected Events",
	"Registration Date & Time",
}

// HandleExport streams every stored registration as CSV, newest first.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	regs, err := h.lister.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list registrations for export",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch registrations"))
		return
	}
	if len(regs) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "No registrations found"))
		return
	}

	body, err := h.renderCSV(regs)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render export",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	filename := fmt.Sprintf("symposium-registrations-%s.csv", requestcontext.Now(ctx).In(h.location).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)

	h.logger.InfoContext(ctx, "registrations exported",
		"request_id", requestID,
		"rows", len(regs),
	)
}

func (h *Handler) renderCSV(regs []*registration.Registration) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, reg := range regs {
		if err := cw.Write([]string{
			reg.Name,
			reg.Email,
			reg.Phone,
			reg.College,
			reg.Department,
			reg.YearOfStudy,
			strings.Join(h.catalog.Names(reg.SelectedEvents), "; "),
			reg.RegisteredAt.In(h.location).Format(exportTimeLayout),
		}); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}
