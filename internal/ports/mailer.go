package ports

import "context"

// Port: outbound email transport.
type Mailer interface {
	// Enabled reports whether the transport is configured. A disabled
	// transport is a valid state: sends fail per recipient instead of
	// aborting the batch.
	Enabled() bool

	Send(ctx context.Context, to, subject, body string) error
}
