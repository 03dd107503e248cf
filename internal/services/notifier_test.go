package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"parcel-intake-service/internal/adapters/mail"
	recstore "parcel-intake-service/internal/adapters/store"
	"parcel-intake-service/internal/domain"
)

func newTestNotifier(store *recstore.MemStore, mailer *mail.MockMailer) *Notifier {
	n := NewNotifier(store, mailer)
	n.Now = fixedClock(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	return n
}

func seedPendingRecords(store *recstore.MemStore) {
	store.Active = []domain.ParcelRecord{
		{SeqNo: 1, LabelID: "20260830-0001", Email: "a@example.com", AWB: "111", Company: "Ekart", MailStatus: domain.MailPending},
		{SeqNo: 2, LabelID: "20260830-0002", Email: "a@example.com", AWB: "222", Company: "Amazon", MailStatus: domain.MailPending},
		{SeqNo: 3, LabelID: "20260830-0003", Email: "b@example.com", AWB: "333", MailStatus: domain.MailPending},
		{SeqNo: 4, LabelID: "20260830-0004", Email: "", MailStatus: domain.MailPending},
		{SeqNo: 5, LabelID: "20260830-0005", Email: "c@example.com", MailStatus: domain.MailSent},
	}
}

func TestSendPendingBatchGroupsByEmail(t *testing.T) {
	store := recstore.NewMemStore()
	seedPendingRecords(store)
	mailer := &mail.MockMailer{}
	n := newTestNotifier(store, mailer)

	res, err := n.SendPendingBatch(context.Background())
	if err != nil {
		t.Fatalf("SendPendingBatch() error: %v", err)
	}

	if len(mailer.Messages) != 2 {
		t.Fatalf("sent %d messages, want 2 (one per address)", len(mailer.Messages))
	}
	first := mailer.Messages[0]
	if first.To != "a@example.com" {
		t.Fatalf("first message to %q, want deterministic address order", first.To)
	}
	if first.Subject != "Parcel Arrival Notification - 2 Package(s)" {
		t.Fatalf("subject = %q", first.Subject)
	}
	if !strings.Contains(first.Body, "--- Parcel 20260830-0001 ---") ||
		!strings.Contains(first.Body, "--- Parcel 20260830-0002 ---") {
		t.Fatalf("body missing parcel sections:\n%s", first.Body)
	}

	if len(res.SentSeqNos) != 3 {
		t.Fatalf("SentSeqNos = %v, want three records", res.SentSeqNos)
	}
	for _, i := range []int{0, 1, 2} {
		if store.Active[i].MailStatus != domain.MailSent {
			t.Fatalf("record %d not marked Sent", store.Active[i].SeqNo)
		}
		if store.Active[i].MailTime != "2026-08-30 12:00:00" {
			t.Fatalf("record %d MailTime = %q", store.Active[i].SeqNo, store.Active[i].MailTime)
		}
	}
	if store.Active[3].MailStatus != domain.MailPending {
		t.Fatalf("record without email was marked Sent")
	}
	if store.WriteCalls != 1 {
		t.Fatalf("store written %d times, want a single final persist", store.WriteCalls)
	}
}

func TestSendPendingBatchFailedRecipientStaysPending(t *testing.T) {
	store := recstore.NewMemStore()
	seedPendingRecords(store)
	mailer := &mail.MockMailer{FailFor: map[string]string{"b@example.com": "mailbox unavailable"}}
	n := newTestNotifier(store, mailer)

	res, err := n.SendPendingBatch(context.Background())
	if err != nil {
		t.Fatalf("SendPendingBatch() error: %v", err)
	}

	if len(res.Failures) != 1 || res.Failures[0].Email != "b@example.com" {
		t.Fatalf("Failures = %+v", res.Failures)
	}
	if len(res.SentSeqNos) != 2 {
		t.Fatalf("SentSeqNos = %v, the other group must still go out", res.SentSeqNos)
	}
	if store.Active[2].MailStatus != domain.MailPending || store.Active[2].MailTime != "" {
		t.Fatalf("failed recipient's record changed: %+v", store.Active[2])
	}
}

func TestSendPendingBatchIsIdempotent(t *testing.T) {
	store := recstore.NewMemStore()
	seedPendingRecords(store)
	mailer := &mail.MockMailer{}
	n := newTestNotifier(store, mailer)

	if _, err := n.SendPendingBatch(context.Background()); err != nil {
		t.Fatalf("first batch: %v", err)
	}
	res, err := n.SendPendingBatch(context.Background())
	if err != nil {
		t.Fatalf("second batch: %v", err)
	}

	if len(res.SentSeqNos) != 0 || len(res.Failures) != 0 {
		t.Fatalf("second batch resent: %+v", res)
	}
	if len(mailer.Messages) != 2 {
		t.Fatalf("mailer saw %d messages across both runs, want 2", len(mailer.Messages))
	}
}

func TestSendPendingBatchDisabledTransport(t *testing.T) {
	store := recstore.NewMemStore()
	seedPendingRecords(store)
	mailer := &mail.MockMailer{Disabled: true}
	n := newTestNotifier(store, mailer)

	res, err := n.SendPendingBatch(context.Background())
	if err != nil {
		t.Fatalf("SendPendingBatch() error: %v", err)
	}

	if len(res.SentSeqNos) != 0 {
		t.Fatalf("sent %v with a disabled transport", res.SentSeqNos)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("Failures = %+v, want one per pending address", res.Failures)
	}
	for _, r := range store.Active {
		if r.MailStatus == domain.MailSent && r.SeqNo != 5 {
			t.Fatalf("record %d marked Sent without a send", r.SeqNo)
		}
	}
}
