package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parcel-intake-service/internal/adapters/directory"
	"parcel-intake-service/internal/adapters/mail"
	"parcel-intake-service/internal/adapters/ocr"
	recstore "parcel-intake-service/internal/adapters/store"
	"parcel-intake-service/internal/api/dto"
	"parcel-intake-service/internal/domain"
	"parcel-intake-service/internal/ports"
	"parcel-intake-service/internal/services"
)

type testEnv struct {
	srv    *httptest.Server
	store  *recstore.MemStore
	mailer *mail.MockMailer
}

func newTestEnv(t *testing.T, ocrOutput string) *testEnv {
	t.Helper()

	store := recstore.NewMemStore()
	dir := &directory.MockDirectory{Entries: []domain.RecipientEntry{
		{Name: "Alice Kumar", RollNo: "21691A3155", Phone: "9876543210", Email: "alice@example.com"},
	}}
	marker := &recstore.MemMarker{}
	mailer := &mail.MockMailer{}

	extractor := services.NewExtractor([]ports.ExtractionProvider{
		&ocr.MockProvider{ProviderName: "mock", Output: ocrOutput},
	}, time.Second)
	ledger := services.NewLedger(store, dir, marker)
	notifier := services.NewNotifier(store, mailer)

	srv := httptest.NewServer(NewRouter(extractor, ledger, notifier, store, t.TempDir()))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, store: store, mailer: mailer}
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	resp, err := http.Get(env.srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestIntakeRunsFullPipeline(t *testing.T) {
	env := newTestEnv(t, "FLIPKART LOGISTICS\nAWB 1234567890123\nRoll: 21691A3155")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("images", "shelf photo.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	io.WriteString(fw, "fake-image-bytes")
	mw.Close()

	resp, err := http.Post(env.srv.URL+"/intake", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /intake: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var res dto.IntakeResponse
	decode(t, resp, &res)

	if len(res.Items) != 1 {
		t.Fatalf("items = %+v, want 1", res.Items)
	}
	item := res.Items[0]
	if item.Filename != "shelf_photo.jpg" {
		t.Fatalf("filename = %q, want sanitized name", item.Filename)
	}
	if !strings.Contains(item.RawText, "FLIPKART") {
		t.Fatalf("raw text = %q", item.RawText)
	}
	rec := item.Record
	if rec.SeqNo != 1 || rec.Company != "FLIPKART LOGISTICS" || rec.AWB != "1234567890123" {
		t.Fatalf("record = %+v", rec)
	}
	// The roll number hit the directory, so identity fields arrive filled.
	if rec.Name != "Alice Kumar" || rec.Email != "alice@example.com" {
		t.Fatalf("directory merge missing: %+v", rec)
	}
	if len(env.store.Active) != 1 {
		t.Fatalf("store holds %d records", len(env.store.Active))
	}
}

func TestIntakeRejectsEmptyForm(t *testing.T) {
	env := newTestEnv(t, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	resp, err := http.Post(env.srv.URL+"/intake", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("POST /intake: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRecordsCRUDOverHTTP(t *testing.T) {
	env := newTestEnv(t, "")

	// Manual blank row.
	resp, err := http.Post(env.srv.URL+"/records", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /records: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created dto.RecordResponse
	decode(t, resp, &created)
	if created.SeqNo != 1 || created.Picked != domain.PickupNotPicked {
		t.Fatalf("created = %+v", created)
	}

	// Edit a field.
	resp, err = http.Post(env.srv.URL+"/records/1", "application/json",
		strings.NewReader(`{"Name": "John Smith"}`))
	if err != nil {
		t.Fatalf("POST /records/1: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	var updated dto.RecordResponse
	decode(t, resp, &updated)
	if updated.Name != "John Smith" {
		t.Fatalf("updated = %+v", updated)
	}

	// Pickup status.
	resp, err = http.Post(env.srv.URL+"/records/1/pickup/Picked", "application/json", nil)
	if err != nil {
		t.Fatalf("POST pickup: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pickup status = %d", resp.StatusCode)
	}

	// List reflects the edits.
	resp, err = http.Get(env.srv.URL + "/records")
	if err != nil {
		t.Fatalf("GET /records: %v", err)
	}
	var list dto.ListRecordsResponse
	decode(t, resp, &list)
	if len(list.Records) != 1 || list.Records[0].Picked != "Picked" {
		t.Fatalf("list = %+v", list)
	}

	// Delete.
	req, _ := http.NewRequest(http.MethodDelete, env.srv.URL+"/records/1", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /records/1: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	if len(env.store.Active) != 0 {
		t.Fatalf("store not empty after delete")
	}
}

func TestRecordEndpointErrors(t *testing.T) {
	env := newTestEnv(t, "")

	resp, err := http.Post(env.srv.URL+"/records/abc", "application/json",
		strings.NewReader(`{"Name": "X"}`))
	if err != nil {
		t.Fatalf("POST /records/abc: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("non-numeric sequence: status = %d, want 400", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, env.srv.URL+"/records/9", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /records/9: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing record: status = %d, want 404", resp.StatusCode)
	}
}

func TestNotifyEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	env.store.Active = []domain.ParcelRecord{
		{SeqNo: 1, LabelID: "20260830-0001", Email: "alice@example.com", MailStatus: domain.MailPending},
	}

	resp, err := http.Post(env.srv.URL+"/notify", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /notify: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var res dto.NotifyResponse
	decode(t, resp, &res)

	if len(res.Sent) != 1 || res.Sent[0] != 1 {
		t.Fatalf("sent = %v", res.Sent)
	}
	if len(env.mailer.Messages) != 1 || env.mailer.Messages[0].To != "alice@example.com" {
		t.Fatalf("messages = %+v", env.mailer.Messages)
	}
}

func TestArchivesEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	env.store.Archives["ledger_2026-08-29_20260830_000100"] = nil

	resp, err := http.Get(env.srv.URL + "/archives")
	if err != nil {
		t.Fatalf("GET /archives: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var res dto.ListArchivesResponse
	decode(t, resp, &res)
	if len(res.Archives) != 1 || res.Archives[0] != "ledger_2026-08-29_20260830_000100" {
		t.Fatalf("archives = %v", res.Archives)
	}
}
