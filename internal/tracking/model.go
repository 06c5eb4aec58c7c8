// Package tracking holds the shipment tracking data model: input rows, raw
// carrier events, consolidated records and their lifecycle categories.
package tracking

import "strings"

// NoInformation replaces a blank trailing field in a full-width record.
const NoInformation = "No information available."

// Headers is the column layout of the consolidated output and of every
// category sheet in the report.
var Headers = []string{
	"Local Date and Time",
	"Country",
	"Location",
	"OrderId",
	"First Name",
	"Last Name",
	"Tracking Number",
	"Event Type",
	"Mail Category",
	"Next Office",
	"Extra Information",
}

// EventTypeColumn is the zero-based index of "Event Type" in Headers.
const EventTypeColumn = 7

// InputRow is one shipment to track, read from columns A-D of the input sheet.
type InputRow struct {
	OrderID        string
	FirstName      string
	LastName       string
	TrackingNumber string
}

// Event is the most recent tracking event for a shipment, as the ordered
// free-text fields scraped from the carrier page. The expected layout is
// date/time, country, location, event type, mail category, next office and
// extra information, but carriers are not strict about it.
type Event struct {
	Fields []string
}

// Field returns the i-th field or "" when the event is shorter.
func (e Event) Field(i int) string {
	if i < 0 || i >= len(e.Fields) {
		return ""
	}
	return e.Fields[i]
}

// Location returns the location field (index 2).
func (e Event) Location() string { return e.Field(2) }

// EventType returns the event description field (index 3).
func (e Event) EventType() string { return e.Field(3) }

// Record is one row of the consolidated output.
type Record struct {
	DateTime       string
	Country        string
	Location       string
	OrderID        string
	FirstName      string
	LastName       string
	TrackingNumber string
	EventType      string
	MailCategory   string
	NextOffice     string
	ExtraInfo      string

	// Overflow holds event fields past the seventh. They are written after
	// the Extra Information column.
	Overflow []string
}

// Row renders the record in Headers order followed by any overflow fields.
func (r Record) Row() []string {
	row := []string{
		r.DateTime,
		r.Country,
		r.Location,
		r.OrderID,
		r.FirstName,
		r.LastName,
		r.TrackingNumber,
		r.EventType,
		r.MailCategory,
		r.NextOffice,
		r.ExtraInfo,
	}
	return append(row, r.Overflow...)
}

// lastField points at the right-most column the record writes.
func (r *Record) lastField() *string {
	if n := len(r.Overflow); n > 0 {
		return &r.Overflow[n-1]
	}
	return &r.ExtraInfo
}

// identityFields is the number of order columns spliced between the location
// and the event type.
const identityFields = 4

// BuildRecord combines a fetched event with the order identity of row. When
// the combined record is wider than ten fields and its last field is blank,
// that field is set to NoInformation. Shorter events leave the missing
// columns empty.
func BuildRecord(row InputRow, ev Event) Record {
	rec := Record{
		DateTime:       ev.Field(0),
		Country:        ev.Field(1),
		Location:       ev.Field(2),
		OrderID:        row.OrderID,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		TrackingNumber: row.TrackingNumber,
		EventType:      ev.Field(3),
		MailCategory:   ev.Field(4),
		NextOffice:     ev.Field(5),
		ExtraInfo:      ev.Field(6),
	}
	if len(ev.Fields) > 7 {
		rec.Overflow = append([]string(nil), ev.Fields[7:]...)
	}

	if len(ev.Fields)+identityFields > 10 {
		if last := rec.lastField(); strings.TrimSpace(*last) == "" {
			*last = NoInformation
		}
	}
	return rec
}
