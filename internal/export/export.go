// Package export renders filtered contact lists for download, either as the
// admin JSON projection or as a fixed 13-column CSV sheet.
//
// CSV rows wrap every field in double quotes and join rows with "\n".
// Embedded double quotes are written as-is, not doubled, so a field that
// contains `"` produces a row that strict RFC 4180 readers reject. Existing
// spreadsheet imports depend on this exact layout.
package export

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/renacod/backend/internal/domain"
)

// Format selects the export encoding.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

// ParseFormat maps a query value onto a Format. Anything other than "csv"
// selects JSON.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(CSV)) {
		return CSV
	}
	return JSON
}

// Filename is the attachment name used for CSV downloads.
const Filename = "contacts.csv"

// TimestampLayout renders Submitted At as an ISO-8601 UTC instant with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Header is the CSV column order.
var Header = []string{
	"Name", "Email", "Phone", "Company", "Subject", "Message",
	"Service", "Budget", "Timeline", "Status", "Priority", "Source",
	"Submitted At",
}

// Row returns the CSV fields of c in Header order. Missing phone or company
// render as empty strings.
func Row(c domain.Contact) []string {
	return []string{
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.Subject,
		c.Message,
		c.Service,
		c.Budget,
		c.Timeline,
		c.Status,
		c.Priority,
		c.Source,
		c.CreatedAt.UTC().Format(TimestampLayout),
	}
}

// WriteCSV writes the header and one row per contact to w.
func WriteCSV(w io.Writer, contacts []domain.Contact) error {
	if err := writeRow(w, Header); err != nil {
		return err
	}
	for _, c := range contacts {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := writeRow(w, Row(c)); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Payload is a rendered export. For CSV, Body holds the document; for JSON,
// Contacts holds the records for the caller to wrap in its envelope.
type Payload struct {
	Format      Format
	ContentType string
	Filename    string
	Count       int
	Body        []byte
	Contacts    []domain.ContactView
}

// Build renders contacts in format. now anchors the derived ages of the
// JSON views.
func Build(format Format, contacts []domain.Contact, now time.Time) (*Payload, error) {
	if format == CSV {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, contacts); err != nil {
			return nil, err
		}
		return &Payload{
			Format:      CSV,
			ContentType: "text/csv",
			Filename:    Filename,
			Count:       len(contacts),
			Body:        buf.Bytes(),
		}, nil
	}
	return &Payload{
		Format:      JSON,
		ContentType: "application/json",
		Count:       len(contacts),
		Contacts:    domain.Views(contacts, now),
	}, nil
}
