package email

import (
	"bytes"
	"fmt"
	"text/template"
)

// Recipient roles for a template
const (
	toAdmin     = "admin"
	toSubmitter = "submitter"
)

// Rendered is a template filled with one submission's variables
type Rendered struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
}

type messageTemplate struct {
	recipient string
	subject   *template.Template
	body      *template.Template
}

// Templates are local renditions of the admin notification and the user
// confirmation, for providers that do not host templates themselves.
type Templates struct {
	adminAddress string
	byID         map[string]messageTemplate
}

// NewTemplates registers both templates under the configured identifiers
func NewTemplates(adminTemplateID, confirmationTemplateID, adminAddress string) (*Templates, error) {
	if adminTemplateID == confirmationTemplateID {
		return nil, fmt.Errorf("email templates need distinct identifiers, got %q twice", adminTemplateID)
	}

	admin, err := parseTemplate(toAdmin,
		"New Inquiry: {{.subject}}",
		"New inquiry from {{.name}} ({{.email}}): {{.message}}\n")
	if err != nil {
		return nil, err
	}
	confirmation, err := parseTemplate(toSubmitter,
		"Thank you for your inquiry",
		"Hi! Thank you for reaching out. We'll get back to you within 24 hours.\n")
	if err != nil {
		return nil, err
	}

	return &Templates{
		adminAddress: adminAddress,
		byID: map[string]messageTemplate{
			adminTemplateID:        admin,
			confirmationTemplateID: confirmation,
		},
	}, nil
}

func parseTemplate(recipient, subject, body string) (messageTemplate, error) {
	subjectTpl, err := template.New("subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return messageTemplate{}, fmt.Errorf("parse subject template: %w", err)
	}
	bodyTpl, err := template.New("body").Option("missingkey=error").Parse(body)
	if err != nil {
		return messageTemplate{}, fmt.Errorf("parse body template: %w", err)
	}
	return messageTemplate{recipient: recipient, subject: subjectTpl, body: bodyTpl}, nil
}

// Render fills the template registered under templateID
func (t *Templates) Render(templateID string, vars Variables) (Rendered, error) {
	tpl, ok := t.byID[templateID]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown email template %q", templateID)
	}

	data := vars.Map()
	var subject, body bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return Rendered{}, fmt.Errorf("render subject of %q: %w", templateID, err)
	}
	if err := tpl.body.Execute(&body, data); err != nil {
		return Rendered{}, fmt.Errorf("render body of %q: %w", templateID, err)
	}

	out := Rendered{Subject: subject.String(), Text: body.String()}
	if tpl.recipient == toAdmin {
		out.To = t.adminAddress
		out.ReplyTo = vars.Email
	} else {
		out.To = vars.Email
	}
	return out, nil
}
