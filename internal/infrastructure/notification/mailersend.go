package notification

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

const sendTimeout = 10 * time.Second

// MailerSendSender implements the NotificationSender port through the
// MailerSend API.
type MailerSendSender struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendSender(apiKey, fromName, fromEmail string) *MailerSendSender {
	return &MailerSendSender{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}
}

func (m *MailerSendSender) Send(ctx context.Context, recipient, subject, body string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: recipient}})
	msg.SetSubject(subject)
	msg.SetHTML(body)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailersend: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}
