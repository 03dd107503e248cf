package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Reported when an update, delete, or status change targets a sequence
// number that does not exist in the selected store.
var ErrRecordNotFound = errors.New("record not found")

// Default states for freshly appended records.
const (
	PickupNotPicked = "Not Picked"
	StatusPending   = "Pending"
	MailPending     = "Pending"
	MailSent        = "Sent"
)

// Columns is the fixed column set of the flat record store, in persisted order.
var Columns = []string{
	"S.No", "Label ID", "Roll No", "Name", "Company", "AWB No",
	"Email", "Phone No", "Time", "Parcel No", "Picked", "Signature",
	"Status", "Mail Status", "Mail Time",
}

// ParcelRecord is one row of the ledger: a single physical parcel logged at
// the reception point. Timestamps are kept as the store's formatted strings;
// the ledger is the only writer of SeqNo, LabelID, and ArrivedAt.
type ParcelRecord struct {
	SeqNo      int
	LabelID    string
	RollNo     string
	Name       string
	Company    string
	AWB        string
	Email      string
	Phone      string
	ArrivedAt  string
	ParcelNo   string
	Picked     string
	Signature  string
	Status     string
	MailStatus string
	MailTime   string
}

// NewLabelID builds the per-day human-readable identifier: day stamp plus a
// zero-padded daily serial, unique and increasing within the day.
func NewLabelID(day time.Time, serial int) string {
	return fmt.Sprintf("%s-%04d", day.Format("20060102"), serial)
}

// Field returns the value stored under a column name. The second return is
// false for columns outside the recognized schema.
func (r *ParcelRecord) Field(col string) (string, bool) {
	switch col {
	case "S.No":
		return strconv.Itoa(r.SeqNo), true
	case "Label ID":
		return r.LabelID, true
	case "Roll No":
		return r.RollNo, true
	case "Name":
		return r.Name, true
	case "Company":
		return r.Company, true
	case "AWB No":
		return r.AWB, true
	case "Email":
		return r.Email, true
	case "Phone No":
		return r.Phone, true
	case "Time":
		return r.ArrivedAt, true
	case "Parcel No":
		return r.ParcelNo, true
	case "Picked":
		return r.Picked, true
	case "Signature":
		return r.Signature, true
	case "Status":
		return r.Status, true
	case "Mail Status":
		return r.MailStatus, true
	case "Mail Time":
		return r.MailTime, true
	}
	return "", false
}

// SetField assigns a value by column name and reports whether the column is
// part of the recognized schema. A malformed S.No leaves the sequence number
// untouched.
func (r *ParcelRecord) SetField(col, value string) bool {
	switch col {
	case "S.No":
		if n, err := strconv.Atoi(value); err == nil {
			r.SeqNo = n
		}
	case "Label ID":
		r.LabelID = value
	case "Roll No":
		r.RollNo = value
	case "Name":
		r.Name = value
	case "Company":
		r.Company = value
	case "AWB No":
		r.AWB = value
	case "Email":
		r.Email = value
	case "Phone No":
		r.Phone = value
	case "Time":
		r.ArrivedAt = value
	case "Parcel No":
		r.ParcelNo = value
	case "Picked":
		r.Picked = value
	case "Signature":
		r.Signature = value
	case "Status":
		r.Status = value
	case "Mail Status":
		r.MailStatus = value
	case "Mail Time":
		r.MailTime = value
	default:
		return false
	}
	return true
}
