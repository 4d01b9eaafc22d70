package notifier

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Dispatcher performs best-effort batch delivery of an HTML notification.
// It returns the number of recipients attempted alongside any overall error.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipients []string, subject, htmlBody string) (int, error)
}

// SMTPDispatcher delivers notifications over plain SMTP.
type SMTPDispatcher struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSMTPDispatcher creates a dispatcher for the given SMTP server.
func NewSMTPDispatcher(host, port, username, password, from string) *SMTPDispatcher {
	return &SMTPDispatcher{Host: host, Port: port, Username: username, Password: password, From: from}
}

// Dispatch sends the message to each recipient independently. Individual
// failures are logged and skipped; an error is returned only when no
// recipient could be reached.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, recipients []string, subject, htmlBody string) (int, error) {
	if len(recipients) == 0 {
		return 0, fmt.Errorf("no recipients")
	}

	addr := d.Host + ":" + d.Port
	var auth smtp.Auth
	if d.Username != "" {
		auth = smtp.PlainAuth("", d.Username, d.Password, d.Host)
	}

	delivered := 0
	for _, to := range recipients {
		select {
		case <-ctx.Done():
			return len(recipients), ctx.Err()
		default:
		}

		msg := buildMessage(d.From, to, subject, htmlBody)
		if err := smtp.SendMail(addr, auth, d.From, []string{to}, msg); err != nil {
			log.Printf("[WARN] notifier: send to %s: %v", to, err)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return len(recipients), fmt.Errorf("delivery failed for all %d recipients", len(recipients))
	}
	return len(recipients), nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
