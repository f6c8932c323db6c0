package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names the notification services render with.
const (
	TemplateInvite        = "invite"
	TemplateSetupComplete = "setup_complete"
	TemplatePasswordReset = "password_reset"
)

var defaultTemplates = map[string]string{
	TemplateInvite: `<html><body>
<p>Hello{{if .FirstName}} {{.FirstName}}{{end}},</p>
<p>You have been invited to join <strong>{{.CompanyName}}</strong> as {{.Role}}.</p>
{{if .RequiresSetup}}<p><a href="{{.DashboardURL}}">Set your password and activate your account</a></p>
{{else}}<p><a href="{{.DashboardURL}}">Open your dashboard</a></p>{{end}}
<p>The HirePro Team</p>
</body></html>`,
	TemplateSetupComplete: `<html><body>
<p>Hello {{.FirstName}},</p>
<p>Your account at <strong>{{.CompanyName}}</strong> is now active. You can sign in with your email and password.</p>
<p>The HirePro Team</p>
</body></html>`,
	TemplatePasswordReset: `<html><body>
<p>Hello,</p>
<p>A password reset was requested for your account.</p>
<p><a href="{{.ResetURL}}">Choose a new password</a></p>
<p>If you did not request this, ignore this message.</p>
<p>The HirePro Team</p>
</body></html>`,
}

// TemplateManager is an in-memory TemplateRenderer preloaded with the
// notification templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, src := range defaultTemplates {
		tm.templates[name] = template.Must(template.New(name).Parse(src))
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
