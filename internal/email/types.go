package email

// Email is the fixed parameter set every notification is built from.
// Delivery is best-effort; callers never wait on a confirmation.
type Email struct {
	From     string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData carries structured context into email templates.
type TemplateData map[string]interface{}
