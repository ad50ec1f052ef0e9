package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/mail"
	"github.com/pngalemo/portfolio/internal/metrics"
	"github.com/pngalemo/portfolio/internal/models"
)

// Messages reported back to the contact form.
const (
	ContactSent       = "Message sent successfully! Thank you for reaching out."
	ContactFailed     = "Failed to send message. Please try again later."
	ContactIncomplete = "Please fill in all fields."
)

// ContactConfig addresses the messages composed by ContactService.
type ContactConfig struct {
	// From is the authenticated sender address.
	From     string
	FromName string
	// Recipient receives every submission.
	Recipient string
}

var contactBody = template.Must(template.New("contact").Parse(`<h2>New Message from your Portfolio Contact Form</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email (for reply):</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

// ContactService relays contact-form submissions to the site owner.
type ContactService struct {
	relay mail.Relay
	cfg   ContactConfig
	log   *zap.Logger
}

// NewContactService constructs a ContactService delivering through relay.
func NewContactService(relay mail.Relay, cfg ContactConfig, log *zap.Logger) *ContactService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactService{relay: relay, cfg: cfg, log: log}
}

// Submit validates sub and delivers it in a single attempt. Invalid input
// never reaches the relay.
func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) (*models.ContactResult, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)

	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		metrics.RecordContact("invalid")
		return nil, apperr.Validation(ContactIncomplete)
	}

	body, err := renderContactBody(sub)
	if err != nil {
		metrics.RecordContact("failed")
		return nil, apperr.Dependency(ContactFailed, err)
	}

	msg := mail.Message{
		FromName: s.cfg.FromName,
		From:     s.cfg.From,
		To:       s.cfg.Recipient,
		ReplyTo:  sub.Email,
		Subject:  "New Contact Form Submission from " + sub.Name,
		HTML:     body,
	}
	if err := s.relay.Send(ctx, msg); err != nil {
		metrics.RecordContact("failed")
		s.log.Error("contact message not delivered", zap.Error(err))
		return nil, apperr.Dependency(ContactFailed, err)
	}

	metrics.RecordContact("sent")
	s.log.Info("contact message delivered")
	return &models.ContactResult{Success: true, Message: ContactSent}, nil
}

// renderContactBody escapes every field and keeps the message's line breaks.
func renderContactBody(sub models.ContactSubmission) (string, error) {
	lines := strings.Split(strings.ReplaceAll(sub.Message, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}

	var buf bytes.Buffer
	err := contactBody.Execute(&buf, struct {
		Name    string
		Email   string
		Message template.HTML
	}{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: template.HTML(strings.Join(lines, "<br>")),
	})
	if err != nil {
		return "", fmt.Errorf("render contact body: %w", err)
	}
	return buf.String(), nil
}
