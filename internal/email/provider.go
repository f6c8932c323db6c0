package email

// Provider sends email. Implementations must be safe for concurrent
// use; services dispatch through goroutines after their transactions
// commit.
type Provider interface {
	// Send delivers a plain email message.
	Send(email *Email) error

	// SendWithTemplate renders templateName with data into the HTML
	// body and sends the message.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named templates for email bodies.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}
