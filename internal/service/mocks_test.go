package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/brightpixel/agency-backend/internal/mailer"
)

// fakeMailer records every delivery and can be told to fail for specific
// addresses. It also tracks how many sends overlap, so batch limits are
// observable.
type fakeMailer struct {
	mu          sync.Mutex
	sent        []mailer.Message
	failTo      map[string]bool
	inFlight    int
	maxInFlight int
	notify      chan mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	fail := m.failTo[msg.To]
	if !fail {
		m.sent = append(m.sent, msg)
	}
	m.mu.Unlock()

	// Give batch-mates a chance to overlap.
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()

	if m.notify != nil {
		m.notify <- msg
	}
	if fail {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) sentMessages() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *fakeMailer) peakConcurrency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}
