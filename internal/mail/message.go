// Package mail delivers composed messages over SMTP. Delivery is a single
// synchronous attempt: no queue, no retry.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/quotedprintable"
	netmail "net/mail"
	"strings"
	"time"
)

// Relay delivers a message or reports why it could not.
type Relay interface {
	Send(ctx context.Context, msg Message) error
}

// Message is a single HTML email.
type Message struct {
	// FromName is the display name of the sender, e.g. "Portfolio Contact".
	FromName string
	// From is the sender address; it is also the SMTP envelope sender.
	From    string
	To      string
	ReplyTo string
	Subject string
	// HTML is the already-escaped body.
	HTML string
}

// headerSafe drops CR and LF so user input cannot start a new header.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// Bytes renders msg as an RFC 5322 message with a quoted-printable HTML body.
func (m Message) Bytes(now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	from := netmail.Address{Name: headerSafe(m.FromName), Address: headerSafe(m.From)}
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", (&netmail.Address{Address: headerSafe(m.To)}).String())
	if m.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", (&netmail.Address{Address: headerSafe(m.ReplyTo)}).String())
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerSafe(m.Subject)))
	fmt.Fprintf(&buf, "Date: %s\r\n", now.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(m.HTML)); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	buf.WriteString("\r\n")
	return buf.Bytes(), nil
}
