package email

// Provider delivers email.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
	Validate() error
	Close() error
}

// Renderer turns a named template into an HTML body.
type Renderer interface {
	Render(templateName string, data TemplateData) (string, error)
}
