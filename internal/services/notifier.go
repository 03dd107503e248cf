package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"parcel-intake-service/internal/domain"
	"parcel-intake-service/internal/ports"
)

// Notifier batches parcel-arrival emails for records not yet notified.
type Notifier struct {
	Store  ports.RecordStore
	Mailer ports.Mailer
	Now    func() time.Time
}

func NewNotifier(store ports.RecordStore, mailer ports.Mailer) *Notifier {
	return &Notifier{Store: store, Mailer: mailer, Now: time.Now}
}

func (n *Notifier) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

type NotifyFailure struct {
	Email  string
	Reason string
}

type NotifyResult struct {
	SentSeqNos []int
	Failures   []NotifyFailure
}

// SendPendingBatch groups every record with a non-empty email and a
// notification state other than Sent by address, sends one multi-parcel
// message per recipient, and marks a group Sent only after its send was
// confirmed. A failed recipient is recorded and the rest of the batch
// continues.
//
// The store is persisted once after all groups. A crash between a send and
// that persist leaves already-notified groups Pending and the operator
// resends; known limitation of the single final write.
func (n *Notifier) SendPendingBatch(ctx context.Context) (NotifyResult, error) {
	records, err := n.Store.ReadAll(ctx, ports.ActiveStore)
	if err != nil {
		return NotifyResult{}, fmt.Errorf("send pending batch: read store: %w", err)
	}

	pending := make(map[string][]int)
	for i := range records {
		r := &records[i]
		if r.MailStatus != domain.MailSent && r.Email != "" {
			pending[r.Email] = append(pending[r.Email], i)
		}
	}

	emails := make([]string, 0, len(pending))
	for email := range pending {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	var res NotifyResult
	now := n.now().Format(timeFormat)

	for _, email := range emails {
		idxs := pending[email]
		subject := fmt.Sprintf("Parcel Arrival Notification - %d Package(s)", len(idxs))
		body := composeBody(records, idxs)

		if err := n.Mailer.Send(ctx, email, subject, body); err != nil {
			log.Printf("notify send failed email=%s parcels=%d err=%v", email, len(idxs), err)
			res.Failures = append(res.Failures, NotifyFailure{Email: email, Reason: err.Error()})
			continue
		}

		for _, i := range idxs {
			records[i].MailStatus = domain.MailSent
			records[i].MailTime = now
			res.SentSeqNos = append(res.SentSeqNos, records[i].SeqNo)
		}
		log.Printf("notify sent email=%s parcels=%d", email, len(idxs))
	}

	if err := n.Store.WriteAll(ctx, ports.ActiveStore, records); err != nil {
		return res, fmt.Errorf("send pending batch: persist: %w", err)
	}

	return res, nil
}

func composeBody(records []domain.ParcelRecord, idxs []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nYou have %d parcel(s) waiting at the reception point.\n\n", len(idxs))
	for _, i := range idxs {
		r := &records[i]
		fmt.Fprintf(&b, "--- Parcel %s ---\n", r.LabelID)
		fmt.Fprintf(&b, "AWB: %s\n", r.AWB)
		fmt.Fprintf(&b, "Company: %s\n", r.Company)
		fmt.Fprintf(&b, "Time: %s\n\n", r.ArrivedAt)
	}
	b.WriteString("Please collect them.\n\nRegards,\nSecurity")
	return b.String()
}
