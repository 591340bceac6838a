package email

// Email is a single outgoing message.
type Email struct {
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

type TemplateData map[string]interface{}
