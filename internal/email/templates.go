package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"symposium/internal/catalog"
	"symposium/internal/registration"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

const registeredAtLayout = "Jan 2, 2006 3:04 PM MST"

type eventView struct {
	Name      string
	Date      string
	StartTime string
	Venue     string
}

// view is the data every template renders from.
type view struct {
	Symposium    string
	ID           string
	Name         string
	Email        string
	Phone        string
	College      string
	Department   string
	YearOfStudy  string
	Events       []eventView
	RegisteredAt string
}

func newView(symposium string, reg *registration.Registration, cat *catalog.Catalog, loc *time.Location) view {
	events := make([]eventView, 0, len(reg.SelectedEvents))
	for _, id := range reg.SelectedEvents {
		e, ok := cat.ByID(id)
		if !ok {
			events = append(events, eventView{Name: id})
			continue
		}
		events = append(events, eventView{Name: e.Name, Date: e.Date, StartTime: e.StartTime, Venue: e.Venue})
	}
	return view{
		Symposium:    symposium,
		ID:           reg.ID.String(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		College:      reg.College,
		Department:   reg.Department,
		YearOfStudy:  reg.YearOfStudy,
		Events:       events,
		RegisteredAt: reg.RegisteredAt.In(loc).Format(registeredAtLayout),
	}
}

// render executes the html and text variants of name.
func render(name string, v view) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&hb, name+".html", v); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&tb, name+".txt", v); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", name, err)
	}
	return hb.String(), tb.String(), nil
}
