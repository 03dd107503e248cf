package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"parcel-intake-service/internal/domain"
	"parcel-intake-service/internal/ports"
)

const (
	dayFormat   = "2006-01-02"
	stampFormat = "20060102_150405"
	timeFormat  = "2006-01-02 15:04:05"

	archivePrefix = "ledger"
)

// Ledger owns the day-scoped record store and its boundary marker.
//
// It assigns serial numbers and label IDs, merges recipient-directory hits
// into appended records, rotates the store into a dated archive on day
// change, and keeps sequence numbers contiguous across deletes. Operations
// assume a single writer per store at a time.
type Ledger struct {
	Store     ports.RecordStore
	Directory ports.RecipientDirectory
	Marker    ports.DayMarker

	// Now is the clock behind serials, stamps, and the boundary check.
	// Tests override it; defaults to time.Now.
	Now func() time.Time
}

func NewLedger(store ports.RecordStore, directory ports.RecipientDirectory, marker ports.DayMarker) *Ledger {
	return &Ledger{Store: store, Directory: directory, Marker: marker, Now: time.Now}
}

func (l *Ledger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// CheckDayBoundary archives and clears the active ledger when the stored
// marker no longer matches the current date, then rewrites the marker to
// today regardless. It runs before every read of or append to the active
// store; calling it twice in the same day changes nothing beyond the marker
// write.
func (l *Ledger) CheckDayBoundary(ctx context.Context) error {
	today := l.now().Format(dayFormat)

	last, err := l.Marker.Load(ctx)
	if err != nil {
		return fmt.Errorf("check day boundary: load marker: %w", err)
	}

	if last != "" && last != today {
		records, err := l.Store.ReadAll(ctx, ports.ActiveStore)
		if err != nil {
			return fmt.Errorf("check day boundary: read active store: %w", err)
		}

		if len(records) > 0 {
			// The full timestamp keeps names unique even when several
			// rollovers land on the same day; the store suffixes on a
			// same-second collision.
			name := fmt.Sprintf("%s_%s_%s", archivePrefix, last, l.now().Format(stampFormat))
			finalName, err := l.Store.CreateArchive(ctx, name, records)
			if err != nil {
				return fmt.Errorf("check day boundary: create archive %q: %w", name, err)
			}

			if err := l.Store.WriteAll(ctx, ports.ActiveStore, nil); err != nil {
				return fmt.Errorf("check day boundary: clear active store: %w", err)
			}

			log.Printf("ledger rotated previous=%s archive=%s records=%d", last, finalName, len(records))
		}
	}

	if err := l.Marker.Store(ctx, today); err != nil {
		return fmt.Errorf("check day boundary: store marker: %w", err)
	}

	return nil
}

// List returns the selected store's records. Listing the active ledger runs
// the day-boundary check first.
func (l *Ledger) List(ctx context.Context, archive string) ([]domain.ParcelRecord, error) {
	if archive == ports.ActiveStore {
		if err := l.CheckDayBoundary(ctx); err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
	}

	records, err := l.Store.ReadAll(ctx, archive)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Append stores a new record in the active ledger.
//
// The sequence number and label ID derive from the current store size; the
// directory is consulted with the input roll number first, then the input
// phone, and a hit fills identity fields — a blank directory field never
// clobbers a value the caller supplied. A zero-value input produces a manual
// blank row with defaults only.
func (l *Ledger) Append(ctx context.Context, in domain.ParcelRecord) (domain.ParcelRecord, error) {
	if err := l.CheckDayBoundary(ctx); err != nil {
		return domain.ParcelRecord{}, fmt.Errorf("append record: %w", err)
	}

	records, err := l.Store.ReadAll(ctx, ports.ActiveStore)
	if err != nil {
		return domain.ParcelRecord{}, fmt.Errorf("append record: read active store: %w", err)
	}

	now := l.now()
	rec := in
	rec.SeqNo = len(records) + 1
	rec.LabelID = domain.NewLabelID(now, len(records)+1)
	rec.ArrivedAt = now.Format(timeFormat)
	if rec.Picked == "" {
		rec.Picked = domain.PickupNotPicked
	}
	if rec.Status == "" {
		rec.Status = domain.StatusPending
	}
	if rec.MailStatus == "" {
		rec.MailStatus = domain.MailPending
	}

	// Lookup keys come from the input fields, not yet-merged data.
	l.mergeDirectory(ctx, &rec, in.RollNo, in.Phone)

	records = append(records, rec)
	if err := l.Store.WriteAll(ctx, ports.ActiveStore, records); err != nil {
		return domain.ParcelRecord{}, fmt.Errorf("append record: persist: %w", err)
	}

	return rec, nil
}

// Update merges caller-supplied column values into the record with the given
// sequence number. Only recognized schema columns apply; S.No stays owned by
// the ledger. An update carrying a roll number (or, failing that, a phone)
// re-runs the directory lookup with the same gap-filling merge.
func (l *Ledger) Update(ctx context.Context, seqNo int, fields map[string]string, archive string) (domain.ParcelRecord, error) {
	records, err := l.Store.ReadAll(ctx, archive)
	if err != nil {
		return domain.ParcelRecord{}, fmt.Errorf("update record %d: %w", seqNo, err)
	}

	idx := indexOf(records, seqNo)
	if idx < 0 {
		return domain.ParcelRecord{}, domain.ErrRecordNotFound
	}

	rec := &records[idx]
	for col, v := range fields {
		if col == "S.No" {
			continue
		}
		rec.SetField(col, v)
	}

	rollKey := fields["Roll No"]
	phoneKey := ""
	if rollKey == "" {
		phoneKey = fields["Phone No"]
	}
	l.mergeDirectory(ctx, rec, rollKey, phoneKey)

	if err := l.Store.WriteAll(ctx, archive, records); err != nil {
		return domain.ParcelRecord{}, fmt.Errorf("update record %d: persist: %w", seqNo, err)
	}

	return *rec, nil
}

// Delete removes the matching record and renumbers the remainder to a dense
// 1..N in their current order. This is a full re-index, not a soft delete.
func (l *Ledger) Delete(ctx context.Context, seqNo int, archive string) error {
	records, err := l.Store.ReadAll(ctx, archive)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", seqNo, err)
	}

	kept := make([]domain.ParcelRecord, 0, len(records))
	for _, r := range records {
		if r.SeqNo != seqNo {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return domain.ErrRecordNotFound
	}

	for i := range kept {
		kept[i].SeqNo = i + 1
	}

	if err := l.Store.WriteAll(ctx, archive, kept); err != nil {
		return fmt.Errorf("delete record %d: persist: %w", seqNo, err)
	}

	return nil
}

// SetPickupStatus sets the pickup field verbatim; the value is not validated.
func (l *Ledger) SetPickupStatus(ctx context.Context, seqNo int, status, archive string) error {
	records, err := l.Store.ReadAll(ctx, archive)
	if err != nil {
		return fmt.Errorf("set pickup status %d: %w", seqNo, err)
	}

	idx := indexOf(records, seqNo)
	if idx < 0 {
		return domain.ErrRecordNotFound
	}
	records[idx].Picked = status

	if err := l.Store.WriteAll(ctx, archive, records); err != nil {
		return fmt.Errorf("set pickup status %d: persist: %w", seqNo, err)
	}

	return nil
}

// mergeDirectory resolves a recipient by roll key, then phone key, and lets a
// hit fill identity fields. Directory values win when non-empty; blanks never
// overwrite what the record already holds. Lookup errors degrade to a miss.
func (l *Ledger) mergeDirectory(ctx context.Context, rec *domain.ParcelRecord, rollKey, phoneKey string) {
	if l.Directory == nil {
		return
	}

	var match *domain.RecipientEntry
	if rollKey != "" {
		m, err := l.Directory.Lookup(ctx, rollKey)
		if err != nil {
			log.Printf("directory lookup failed key=%q err=%v", rollKey, err)
		}
		match = m
	}
	if match == nil && phoneKey != "" {
		m, err := l.Directory.Lookup(ctx, phoneKey)
		if err != nil {
			log.Printf("directory lookup failed key=%q err=%v", phoneKey, err)
		}
		match = m
	}
	if match == nil {
		return
	}

	if match.Name != "" {
		rec.Name = match.Name
	}
	if match.Email != "" {
		rec.Email = match.Email
	}
	if match.Phone != "" {
		rec.Phone = match.Phone
	}
	if match.RollNo != "" {
		rec.RollNo = match.RollNo
	}
}

func indexOf(records []domain.ParcelRecord, seqNo int) int {
	for i := range records {
		if records[i].SeqNo == seqNo {
			return i
		}
	}
	return -1
}
