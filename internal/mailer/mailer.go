// Package mailer abstracts the outbound mail transport so services can be
// tested without an SMTP server.
package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Message is one outbound email. Text is optional; when empty a plain-text
// alternative is derived from the HTML.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a single message. Implementations must be safe for
// concurrent use: bulk dispatch fans out sends within a batch.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP sends mail over a fresh SMTP session per message.
type SMTP struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	// Timeout bounds a single send so a hung connection cannot stall a
	// whole dispatch batch.
	Timeout time.Duration
}

const defaultSendTimeout = 30 * time.Second

// Send dials the SMTP server and delivers msg, honoring ctx and the
// configured per-send timeout.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.FromAddress, s.FromName))
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	text := msg.Text
	if text == "" {
		text = StripTags(msg.HTML)
	}
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", msg.HTML)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return fmt.Errorf("smtp send to %s timed out after %s", msg.To, timeout)
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup from HTML to produce a crude plain-text fallback.
func StripTags(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}
