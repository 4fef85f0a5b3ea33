// Package mailer sends notification email through SendGrid.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"cryptocortex/logger"
)

type Mailer struct {
	apiKey string
	inbox  string
}

// New returns a Mailer delivering to the support inbox. With an empty
// API key delivery is skipped and only logged, which keeps local
// development working without credentials.
func New(apiKey, supportInbox string) *Mailer {
	return &Mailer{apiKey: apiKey, inbox: supportInbox}
}

// SendSupportRequest forwards a support form submission to the
// support inbox.
func (m *Mailer) SendSupportRequest(name, email, message string) error {
	if m.apiKey == "" || m.inbox == "" {
		logger.Log.Infow("support request (mail delivery disabled)",
			"name", name, "email", email)
		return nil
	}

	from := mail.NewEmail("CryptoCortex Support", "donotreply@cryptocortex.app")
	to := mail.NewEmail("", m.inbox)
	subject := fmt.Sprintf("Support request from %s", name)

	plain := fmt.Sprintf("From: %s (%s)\n\n%s", name, email, message)
	html := fmt.Sprintf("<p>From: %s (%s)</p><p>%s</p>", name, email, message)

	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(m.apiKey)

	resp, err := client.Send(msg)
	if err != nil {
		return fmt.Errorf("sending support email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("support email rejected with status %d", resp.StatusCode)
	}

	logger.Log.Infow("support request forwarded", "from", email)
	return nil
}
