package domain

import (
	"testing"
	"time"
)

func TestNewLabelID(t *testing.T) {
	day := time.Date(2026, 8, 30, 14, 3, 0, 0, time.UTC)

	if got := NewLabelID(day, 7); got != "20260830-0007" {
		t.Fatalf("NewLabelID() = %q, want %q", got, "20260830-0007")
	}
	if got := NewLabelID(day, 12345); got != "20260830-12345" {
		t.Fatalf("NewLabelID() = %q, serial must not truncate", got)
	}
}

func TestFieldSetFieldRoundTrip(t *testing.T) {
	var rec ParcelRecord
	values := map[string]string{
		"S.No":        "3",
		"Label ID":    "20260830-0003",
		"Roll No":     "21691A3155",
		"Name":        "John Smith",
		"Company":     "Ekart",
		"AWB No":      "1234567890123",
		"Email":       "john@example.com",
		"Phone No":    "9876543210",
		"Time":        "2026-08-30 10:15:00",
		"Parcel No":   "2",
		"Picked":      PickupNotPicked,
		"Signature":   "JS",
		"Status":      StatusPending,
		"Mail Status": MailPending,
		"Mail Time":   "",
	}

	for col, v := range values {
		if !rec.SetField(col, v) {
			t.Fatalf("SetField(%q) rejected a schema column", col)
		}
	}
	for col, want := range values {
		got, ok := rec.Field(col)
		if !ok || got != want {
			t.Fatalf("Field(%q) = (%q, %v), want (%q, true)", col, got, ok, want)
		}
	}
}

func TestSetFieldUnknownColumn(t *testing.T) {
	var rec ParcelRecord

	if rec.SetField("Tracking URL", "x") {
		t.Fatal("SetField() accepted a column outside the schema")
	}
	if _, ok := rec.Field("Tracking URL"); ok {
		t.Fatal("Field() reported an unknown column as known")
	}
}

func TestSetFieldMalformedSeqNo(t *testing.T) {
	rec := ParcelRecord{SeqNo: 4}

	rec.SetField("S.No", "not-a-number")
	if rec.SeqNo != 4 {
		t.Fatalf("SeqNo = %d, malformed value must leave it untouched", rec.SeqNo)
	}
}
