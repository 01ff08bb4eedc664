// Package catalog holds the symposium's static event list.
//
// A Catalog is built once at startup and never mutated, so it is shared by
// reference across requests without locking.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

//go:embed events.json
var embeddedEvents []byte

// TimelineEntry is one line of an event's day-of schedule.
type TimelineEntry struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// Event is a competition or session attendees can register for.
type Event struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	LongDescription string          `json:"longDescription,omitempty"`
	Rules           []string        `json:"rules"`
	Prize           string          `json:"prize"`
	Date            string          `json:"date,omitempty"`
	Venue           string          `json:"venue,omitempty"`
	StartTime       string          `json:"startTime,omitempty"`
	TeamSize        string          `json:"teamSize,omitempty"`
	EntryFee        string          `json:"entryFee,omitempty"`
	Timeline        []TimelineEntry `json:"timeline,omitempty"`
}

// clone copies e including its nested slices.
func (e Event) clone() Event {
	e.Rules = slices.Clone(e.Rules)
	e.Timeline = slices.Clone(e.Timeline)
	return e
}

// Catalog is an immutable, indexed event list.
type Catalog struct {
	events []Event
	byID   map[string]int
	bySlug map[string]int
}

type document struct {
	Events []Event `json:"events"`
}

// Load parses a catalog document ({"events": [...]}).
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode event catalog: %w", err)
	}
	return New(doc.Events)
}

// LoadFile loads a catalog from path, or the embedded catalog when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedEvents))
}

// New indexes events. Ids and slugs must be present and unique.
func New(events []Event) (*Catalog, error) {
	c := &Catalog{
		events: make([]Event, len(events)),
		byID:   make(map[string]int, len(events)),
		bySlug: make(map[string]int, len(events)),
	}
	for i, e := range events {
		c.events[i] = e.clone()
	}

	for i, e := range c.events {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("event %d: id and name are required", i)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate event id %q", e.ID)
		}
		c.byID[e.ID] = i
		if e.Slug == "" {
			continue
		}
		if _, dup := c.bySlug[e.Slug]; dup {
			return nil, fmt.Errorf("duplicate event slug %q", e.Slug)
		}
		c.bySlug[e.Slug] = i
	}
	return c, nil
}

// Events returns a copy of all events in catalog order.
func (c *Catalog) Events() []Event {
	out := make([]Event, len(c.events))
	for i, e := range c.events {
		out[i] = e.clone()
	}
	return out
}

// ByID looks up an event by id. The result is a copy.
func (c *Catalog) ByID(id string) (Event, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Event{}, false
	}
	return c.events[i].clone(), true
}

// BySlug looks up an event by slug. The result is a copy.
func (c *Catalog) BySlug(slug string) (Event, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Event{}, false
	}
	return c.events[i].clone(), true
}

// Slugs lists every event slug in catalog order.
func (c *Catalog) Slugs() []string {
	out := make([]string, 0, len(c.bySlug))
	for _, e := range c.events {
		if e.Slug != "" {
			out = append(out, e.Slug)
		}
	}
	return out
}

// Name returns the display name for id, or id itself when unknown.
func (c *Catalog) Name(id string) string {
	if i, ok := c.byID[id]; ok {
		return c.events[i].Name
	}
	return id
}

// Names resolves each id with Name, preserving order.
func (c *Catalog) Names(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = c.Name(id)
	}
	return out
}
