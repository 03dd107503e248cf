package mail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// SMTPMailer sends through shoutrrr's smtp service, building one service URL
// per recipient. Missing credentials mean the transport is disabled, which is
// a valid state rather than an error at construction.
type SMTPMailer struct {
	From     string
	Password string
	Host     string
	Port     string
	Timeout  time.Duration
}

func NewSMTPMailer(from, password, host, port string) *SMTPMailer {
	return &SMTPMailer{
		From:     from,
		Password: password,
		Host:     host,
		Port:     port,
		Timeout:  30 * time.Second,
	}
}

func (m *SMTPMailer) Enabled() bool { return m.From != "" && m.Password != "" }

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return errors.New("smtp mailer: transport not configured")
	}
	if to == "" {
		return errors.New("smtp mailer: empty recipient")
	}

	serviceURL := fmt.Sprintf(
		"smtp://%s:%s@%s:%s/?from=%s&to=%s&usestarttls=yes",
		url.QueryEscape(m.From), url.QueryEscape(m.Password),
		m.Host, m.Port,
		url.QueryEscape(m.From), url.QueryEscape(to),
	)

	sender, err := shoutrrr.CreateSender(serviceURL)
	if err != nil {
		return fmt.Errorf("smtp mailer: create sender: %w", err)
	}
	if m.Timeout > 0 {
		sender.Timeout = m.Timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	params := stypes.Params{}
	params.SetTitle(subject)

	for _, sendErr := range sender.Send(body, &params) {
		if sendErr != nil {
			return fmt.Errorf("smtp mailer: send to %s: %w", to, sendErr)
		}
	}

	return nil
}
