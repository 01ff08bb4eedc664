package handler_test

import (
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"symposium/internal/catalog"
	"symposium/internal/registration"
	"symposium/internal/registration/handler"
	"symposium/internal/registration/store"
	"symposium/pkg/platform/httputil"
	"symposium/pkg/requestcontext"
	"symposium/pkg/testutil"
)

var fixedNow = time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC)

type failingLister struct{}

func (failingLister) List(context.Context) ([]*registration.Registration, error) {
	return nil, errors.New("connection reset by peer")
}

type brokenRegistrar struct{}

func (brokenRegistrar) Register(context.Context, registration.Submission) (*registration.Result, error) {
	return nil, errors.New("unexpected nil pointer")
}

type HandlerSuite struct {
	suite.Suite
	store   *store.InMemory
	catalog *catalog.Catalog
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	cat, err := catalog.Embedded()
	s.Require().NoError(err)
	s.catalog = cat
	s.store = store.NewInMemory()

	svc, err := registration.NewService(s.store, registration.WithDispatch(registration.DispatchAwait))
	s.Require().NoError(err)

	s.router = s.newRouter(handler.New(svc, s.store, cat, slog.New(slog.DiscardHandler),
		handler.WithLocation(time.FixedZone("IST", 5*60*60+30*60))))
}

func (s *HandlerSuite) newRouter(h *handler.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), fixedNow)))
		})
	})
	r.Post("/api/register", h.HandleRegister)
	r.Get("/api/export", h.HandleExport)
	r.Get("/api/events", h.HandleListEvents)
	r.Get("/api/events/{slug}", h.HandleGetEvent)
	return r
}

func validPayload() map[string]any {
	return map[string]any{
		"name":           "Ada Lovelace",
		"email":          "ada@example.com",
		"phone":          "9876543210",
		"college":        "Analytical College",
		"department":     "CSE",
		"yearOfStudy":    "3rd Year",
		"selectedEvents": []string{"paper-presentation", "web-design"},
	}
}

func (s *HandlerSuite) stored() []*registration.Registration {
	regs, err := s.store.List(context.Background())
	s.Require().NoError(err)
	return regs
}

func (s *HandlerSuite) TestRegisterAccepted() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", validPayload()))

	testutil.RequireStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[handler.RegisterResponse](s.T(), rr)
	s.Equal("Registration successful", body.Message)
	s.Equal(handler.RegisterData{Name: "Ada Lovelace", Email: "ada@example.com"}, body.Data)
	s.NotContains(rr.Body.String(), "9876543210")

	regs := s.stored()
	s.Require().Len(regs, 1)
	s.Equal(fixedNow, regs[0].RegisteredAt)
	s.Equal([]string{"paper-presentation", "web-design"}, regs[0].SelectedEvents)
}

func (s *HandlerSuite) TestRegisterTrimsFields() {
	payload := validPayload()
	payload["name"] = "  Ada Lovelace  "
	payload["email"] = " ada@example.com "

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", payload))

	testutil.RequireStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[handler.RegisterResponse](s.T(), rr)
	s.Equal("Ada Lovelace", body.Data.Name)
	s.Equal("ada@example.com", body.Data.Email)
}

func (s *HandlerSuite) TestRegisterInvalidEmail() {
	payload := map[string]any{
		"name": "A", "email": "bad-email", "phone": "1", "college": "C",
		"department": "D", "yearOfStudy": "1st Year", "selectedEvents": []string{"x"},
	}

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", payload))

	testutil.RequireStatus(s.T(), rr, http.StatusBadRequest)
	body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
	s.Contains(body.Error, "invalid email format")
	s.Equal("invalid email format", body.Fields["email"])
	s.Empty(s.stored())
}

func (s *HandlerSuite) TestRegisterMissingFields() {
	for _, field := range []string{"name", "email", "phone", "college", "department", "yearOfStudy"} {
		s.Run(field, func() {
			payload := validPayload()
			delete(payload, field)

			rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", payload))

			testutil.RequireStatus(s.T(), rr, http.StatusBadRequest)
			body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
			s.Contains(body.Fields, field)
		})
	}
	s.Empty(s.stored())
}

func (s *HandlerSuite) TestRegisterNoEvents() {
	for name, events := range map[string]any{"empty": []string{}, "null": nil, "blank ids": []string{" ", ""}} {
		s.Run(name, func() {
			payload := validPayload()
			payload["selectedEvents"] = events

			rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", payload))

			testutil.RequireStatus(s.T(), rr, http.StatusBadRequest)
			body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
			s.Equal("select at least one event", body.Fields["selectedEvents"])
		})
	}
	s.Empty(s.stored())
}

func (s *HandlerSuite) TestRegisterMalformedBody() {
	for name, raw := range map[string]string{
		"not json":          "{name:",
		"wrong event type":  `{"name":"A","selectedEvents":"paper-presentation"}`,
		"array body":        `[]`,
		"wrong field type":  `{"name":42}`,
		"truncated payload": `{"name":"A"`,
	} {
		s.Run(name, func() {
			rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/register", raw))

			testutil.RequireStatus(s.T(), rr, http.StatusBadRequest)
			body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
			s.Equal("Invalid request body", body.Error)
		})
	}
}

func (s *HandlerSuite) TestRegisterUnexpectedError() {
	router := s.newRouter(handler.New(brokenRegistrar{}, s.store, s.catalog, slog.New(slog.DiscardHandler)))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", validPayload()))

	testutil.RequireStatus(s.T(), rr, http.StatusInternalServerError)
	body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
	s.Equal(httputil.GenericErrorMessage, body.Error)
	s.NotContains(rr.Body.String(), "nil pointer")
}

func (s *HandlerSuite) TestRegisterDuplicateSubmissions() {
	for range 2 {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/register", validPayload()))
		testutil.RequireStatus(s.T(), rr, http.StatusOK)
	}
	regs := s.stored()
	s.Require().Len(regs, 2)
	s.NotEqual(regs[0].ID, regs[1].ID)
}

func (s *HandlerSuite) TestExportEmpty() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/export", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusNotFound)
	body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
	s.Equal("No registrations found", body.Error)
}

func (s *HandlerSuite) TestExportCSV() {
	ctx := context.Background()
	older := registration.NewRegistration(registration.Submission{
		Name: `Grace "Amazing" Hopper`, Email: "grace@example.com", Phone: "1", College: "Navy, College",
		Department: "Math", YearOfStudy: "4th Year", SelectedEvents: []string{"technical-quiz", "retired-event"},
	}, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC))
	newer := registration.NewRegistration(registration.Submission{
		Name: "Ada Lovelace", Email: "ada@example.com", Phone: "2", College: "Analytical College",
		Department: "CSE", YearOfStudy: "3rd Year", SelectedEvents: []string{"paper-presentation", "web-design"},
	}, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	s.Require().NoError(s.store.Insert(ctx, older))
	s.Require().NoError(s.store.Insert(ctx, newer))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/export", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusOK)
	s.Equal("text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="symposium-registrations-2026-03-02.csv"`, rr.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(strings.NewReader(rr.Body.String())).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal([]string{
		"Name", "Email", "Phone", "College", "Department", "Year of Study", "Selected Events", "Registration Date & Time",
	}, records[0])
	s.Equal([]string{
		"Ada Lovelace", "ada@example.com", "2", "Analytical College", "CSE", "3rd Year",
		"Paper Presentation; Web Design", "3/1/2026, 3:00:00 PM",
	}, records[1])
	s.Equal(`Grace "Amazing" Hopper`, records[2][0])
	s.Equal("Navy, College", records[2][3])
	s.Equal("Technical Quiz; retired-event", records[2][6])
	s.Equal("2/28/2026, 3:30:00 PM", records[2][7])
}

func (s *HandlerSuite) TestExportStoreFailure() {
	router := s.newRouter(handler.New(nil, failingLister{}, s.catalog, slog.New(slog.DiscardHandler)))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/export", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusInternalServerError)
	body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
	s.Equal(httputil.GenericErrorMessage, body.Error)
}

func (s *HandlerSuite) TestExportUnconfiguredStore() {
	router := s.newRouter(handler.New(nil, store.Unconfigured{}, s.catalog, slog.New(slog.DiscardHandler)))

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/export", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusInternalServerError)
}

func (s *HandlerSuite) TestListEvents() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/events", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[struct {
		Data []catalog.Event `json:"data"`
	}](s.T(), rr)
	s.Equal(s.catalog.Events(), body.Data)
}

func (s *HandlerSuite) TestGetEvent() {
	event, ok := s.catalog.ByID("paper-presentation")
	s.Require().True(ok)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/events/"+event.Slug, nil))

	testutil.RequireStatus(s.T(), rr, http.StatusOK)
	body := testutil.UnmarshalResponse[struct {
		Data catalog.Event `json:"data"`
	}](s.T(), rr)
	s.Equal(event, body.Data)
}

func (s *HandlerSuite) TestGetEventUnknownSlug() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/api/events/no-such-event", nil))

	testutil.RequireStatus(s.T(), rr, http.StatusNotFound)
	body := testutil.UnmarshalResponse[testutil.ErrorBody](s.T(), rr)
	s.Equal("Event not found", body.Error)
}
