package email

// Provider sends email messages.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendTemplate renders the named template with data and delivers the
	// result as an HTML message.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases provider resources.
	Close() error
}

// TemplateRenderer renders named email templates.
type TemplateRenderer interface {
	// Render executes the named template with data.
	Render(templateName string, data TemplateData) (string, error)

	// AddTemplate registers a template from source text.
	AddTemplate(name string, template string) error

	// LoadTemplates registers every .html template under a directory.
	LoadTemplates(dirPath string) error
}
