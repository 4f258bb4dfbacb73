package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	AppName      string
}

// Sender delivers composed messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailService sends transactional mail to staff
type EmailService struct {
	config EmailConfig
	sender Sender
}

var ErrNotConfigured = errors.New("email: SMTP host is not configured")

// NewEmailService creates a new email service backed by an SMTP dialer
func NewEmailService(config EmailConfig) *EmailService {
	var sender Sender
	if config.SMTPHost != "" {
		sender = gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword)
	}
	return &EmailService{config: config, sender: sender}
}

// NewEmailServiceWithSender is used when the transport is provided by the caller
func NewEmailServiceWithSender(config EmailConfig, sender Sender) *EmailService {
	return &EmailService{config: config, sender: sender}
}

// CommissionStatement is the data rendered into a commission statement mail.
// Money values are preformatted strings.
type CommissionStatement struct {
	StaffName      string
	Domain         string
	Method         string
	PeriodStart    string
	PeriodEnd      string
	ServiceRevenue string
	SignupRevenue  string
	Income         string
	Percentage     string
	Commission     string
}

// SendCommissionStatement mails a commission statement to the given address
func (s *EmailService) SendCommissionStatement(to string, st CommissionStatement) error {
	if s.sender == nil {
		return ErrNotConfigured
	}

	body, err := s.render(st)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s - Commission statement %s to %s", s.config.AppName, st.PeriodStart, st.PeriodEnd))
	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) render(st CommissionStatement) (string, error) {
	tmpl, err := template.New("commission_statement").Parse(statementTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		CommissionStatement
		AppName string
	}{st, s.config.AppName}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const statementTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Commission statement</title></head>
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; background-color: #f4f7fa; padding: 24px;">
  <table role="presentation" style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 10px; padding: 24px;">
    <tr><td>
      <h2 style="margin-top: 0;">{{.AppName}}</h2>
      <p>Hello {{.StaffName}},</p>
      <p>Your {{.Domain}} commission for {{.PeriodStart}} to {{.PeriodEnd}} ({{.Method}} method):</p>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td>Service revenue</td><td style="text-align: right;">{{.ServiceRevenue}}</td></tr>
        <tr><td>Signup bonuses</td><td style="text-align: right;">{{.SignupRevenue}}</td></tr>
        <tr><td>Total income</td><td style="text-align: right;">{{.Income}}</td></tr>
        <tr><td>Rate</td><td style="text-align: right;">{{.Percentage}}%</td></tr>
        <tr><td><strong>Commission</strong></td><td style="text-align: right;"><strong>{{.Commission}}</strong></td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`
