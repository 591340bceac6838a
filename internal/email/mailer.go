package email

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/metrics"
)

// Mailer sends the portal's transactional mail in the background.
// Delivery failures are logged and counted, never returned to the caller.
type Mailer struct {
	provider    Provider
	metrics     metrics.Recorder
	frontendURL string
	wg          sync.WaitGroup
}

func NewMailer(provider Provider, rec metrics.Recorder, frontendURL string) *Mailer {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Mailer{
		provider:    provider,
		metrics:     rec,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Dispatch queues one templated email.
func (m *Mailer) Dispatch(to, subject, templateName string, data TemplateData) {
	if m == nil || m.provider == nil || to == "" {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		err := m.provider.SendTemplate([]string{to}, subject, templateName, data)
		logger.MailLog(templateName, to, err)
		m.metrics.RecordEmail(err == nil)
	}()
}

// Wait blocks until every dispatched email has finished.
func (m *Mailer) Wait() {
	if m != nil {
		m.wg.Wait()
	}
}

func (m *Mailer) Welcome(to, name, role string) {
	m.Dispatch(to, "Welcome to Job Portal", TemplateWelcome, TemplateData{"Name": name, "Role": role})
}

func (m *Mailer) PasswordReset(to, name, token string, ttl time.Duration) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, url.QueryEscape(token))
	m.Dispatch(to, "Password Reset Request", TemplatePasswordReset, TemplateData{
		"Name":      name,
		"ResetURL":  resetURL,
		"ExpiresIn": humanDuration(ttl),
	})
}

func (m *Mailer) PasswordChanged(to, name string) {
	m.Dispatch(to, "Password Reset Successful", TemplatePasswordChanged, TemplateData{"Name": name})
}

func (m *Mailer) JobReviewed(to, jobTitle, status, reason string) {
	m.Dispatch(to, "Job "+status, TemplateJobReviewed, TemplateData{
		"JobTitle":    jobTitle,
		"Status":      status,
		"StatusTitle": strings.ToUpper(status),
		"Reason":      reason,
	})
}

func (m *Mailer) EmployerVerified(to string) {
	m.Dispatch(to, "Account Verified", TemplateEmployerVerified, TemplateData{})
}

func (m *Mailer) VerificationRequested(adminEmail, employerName, employerEmail string) {
	m.Dispatch(adminEmail, "Employer Verification Requested", TemplateVerificationRequest, TemplateData{
		"Name":  employerName,
		"Email": employerEmail,
	})
}

func (m *Mailer) ApplicationSubmitted(to, name, jobTitle, company string) {
	m.Dispatch(to, "Application Submitted", TemplateApplicationSubmitted, TemplateData{
		"Name":     name,
		"JobTitle": jobTitle,
		"Company":  company,
	})
}

func (m *Mailer) ApplicationReceived(to, employerName, applicantName, jobTitle string) {
	m.Dispatch(to, "New Application Received", TemplateApplicationReceived, TemplateData{
		"Name":          employerName,
		"ApplicantName": applicantName,
		"JobTitle":      jobTitle,
	})
}

func (m *Mailer) ApplicationStatus(to, name, jobTitle, company, status, notes string) {
	m.Dispatch(to, "Application "+status, TemplateApplicationStatus, TemplateData{
		"Name":     name,
		"JobTitle": jobTitle,
		"Company":  company,
		"Status":   status,
		"Notes":    notes,
	})
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	}
	return fmt.Sprintf("%d minutes", int(d/time.Minute))
}
