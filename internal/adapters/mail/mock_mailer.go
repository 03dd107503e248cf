package mail

import (
	"context"
	"fmt"
)

// Sent captures one delivered message in a MockMailer.
type Sent struct {
	To      string
	Subject string
	Body    string
}

// MockMailer records sends and fails selected recipients, for tests.
type MockMailer struct {
	Disabled bool
	FailFor  map[string]string // recipient -> error detail

	Messages []Sent
}

func (m *MockMailer) Enabled() bool { return !m.Disabled }

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.Disabled {
		return fmt.Errorf("mock mailer: transport not configured")
	}
	if reason, ok := m.FailFor[to]; ok {
		return fmt.Errorf("mock mailer: %s", reason)
	}
	m.Messages = append(m.Messages, Sent{To: to, Subject: subject, Body: body})
	return nil
}
