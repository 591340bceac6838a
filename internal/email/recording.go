package email

import (
	"sync"

	"jobportal_backend/internal/logger"
)

// maxRecorded bounds memory when the recorder stands in for SMTP in a long-running server.
const maxRecorded = 200

// SentEmail is one message captured by RecordingProvider.
type SentEmail struct {
	To       []string
	Subject  string
	Template string
	HTMLBody string
}

// RecordingProvider keeps messages in memory instead of sending them.
// It backs the service when SMTP is not configured and is used in tests.
type RecordingProvider struct {
	renderer Renderer

	mu   sync.Mutex
	sent []SentEmail
}

func NewRecordingProvider(renderer Renderer) *RecordingProvider {
	return &RecordingProvider{renderer: renderer}
}

func (p *RecordingProvider) Send(email *Email) error {
	p.record(SentEmail{To: email.To, Subject: email.Subject, HTMLBody: email.HTMLBody})
	return nil
}

func (p *RecordingProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	var body string
	if p.renderer != nil {
		rendered, err := p.renderer.Render(templateName, data)
		if err != nil {
			return err
		}
		body = rendered
	}
	p.record(SentEmail{To: to, Subject: subject, Template: templateName, HTMLBody: body})
	return nil
}

func (p *RecordingProvider) record(e SentEmail) {
	logger.Debug("email not configured - skipping", "subject", e.Subject, "to", e.To)
	p.mu.Lock()
	p.sent = append(p.sent, e)
	if len(p.sent) > maxRecorded {
		p.sent = p.sent[len(p.sent)-maxRecorded:]
	}
	p.mu.Unlock()
}

// Sent returns a copy of everything captured so far.
func (p *RecordingProvider) Sent() []SentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]SentEmail, len(p.sent))
	copy(out, p.sent)
	return out
}

func (p *RecordingProvider) Validate() error { return nil }
func (p *RecordingProvider) Close() error    { return nil }
