package email

import (
	"html"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_Render(t *testing.T) {
	tm, err := NewTemplates("")
	require.NoError(t, err)

	out, err := tm.Render(TemplateApplicationStatus, TemplateData{
		"Name": "Ann", "JobTitle": "Go Dev", "Company": "Acme", "Status": "shortlisted", "Notes": "",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "shortlisted for this position")
	assert.NotContains(t, out, "Notes from employer")

	out, err = tm.Render(TemplateWelcome, TemplateData{"Name": "<b>x</b>", "Role": "employer"})
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, out, "requires admin verification")
}

func TestTemplates_DirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welcome.html"), []byte("custom {{.Name}}"), 0o600))

	tm, err := NewTemplates(dir)
	require.NoError(t, err)

	out, err := tm.Render(TemplateWelcome, TemplateData{"Name": "Bo"})
	require.NoError(t, err)
	assert.Equal(t, "custom Bo", out)
	assert.Contains(t, tm.Names(), TemplatePasswordReset)
}

func TestMailer_DispatchIsRecorded(t *testing.T) {
	tm, err := NewTemplates("")
	require.NoError(t, err)
	rec := NewRecordingProvider(tm)
	m := NewMailer(rec, nil, "http://front.example/")

	m.PasswordReset("a@b.c", "Ann", "tok en", time.Hour)
	m.Wait()

	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@b.c"}, sent[0].To)
	assert.Equal(t, "Password Reset Request", sent[0].Subject)
	// attribute values come out entity-escaped, so '+' is rendered as &#43;
	assert.Contains(t, html.UnescapeString(sent[0].HTMLBody), `href="http://front.example/reset-password?token=tok+en"`)
	assert.Contains(t, sent[0].HTMLBody, "1 hour")
}

func TestSMTPProvider_Validate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Port: 587}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.example.com", Port: 587, FromEmail: "no-reply@example.com"}, nil)
	assert.NoError(t, p.Validate())
}
