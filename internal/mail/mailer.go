// Package mail sends transactional email through the Resend API.
package mail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"
)

// Mailer dispatches account emails. Implementations must not block the
// caller on network I/O.
type Mailer interface {
	SendRegistrationEmail(to, fullName string)
}

type message struct {
	to      string
	subject string
	html    string
}

// ResendMailer sends email via Resend through a buffered worker so the
// registration flow never waits on the mail API. Failures are logged;
// a lost welcome email is not worth failing a registration over.
type ResendMailer struct {
	client *resend.Client
	from   string
	queue  chan message
}

// NewResendMailer creates a mailer and starts its send worker.
func NewResendMailer(apiKey, from string) *ResendMailer {
	m := &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		queue:  make(chan message, 100),
	}
	go m.worker()
	return m
}

// SendRegistrationEmail queues a welcome email for a newly registered user.
func (m *ResendMailer) SendRegistrationEmail(to, fullName string) {
	msg := message{
		to:      to,
		subject: "Registration Successful",
		html: fmt.Sprintf(
			"<p>Dear %s,</p><p>Welcome to Event Buddy! Your registration has been successfully completed.</p>"+
				"<p>You can now log in and start booking events.</p><p>Best regards,<br>The Event Buddy Team</p>",
			fullName),
	}
	select {
	case m.queue <- msg:
	default:
		log.Printf("mail queue full, dropping welcome email for %s", to)
	}
}

func (m *ResendMailer) worker() {
	for msg := range m.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := m.send(ctx, msg); err != nil {
			log.Printf("send email to %s: %v", msg.to, err)
		}
		cancel()
	}
}

func (m *ResendMailer) send(ctx context.Context, msg message) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.to},
		Subject: msg.subject,
		Html:    msg.html,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			return fmt.Errorf("rate limit exceeded (limit %s, resets in %s seconds): %w",
				rateLimitErr.Limit, rateLimitErr.Reset, err)
		}
		return err
	}

	log.Printf("email %s sent to %s", sent.Id, msg.to)
	return nil
}
