package dto

import "parcel-intake-service/internal/domain"

type RecordResponse struct {
	SeqNo      int    `json:"s_no"`
	LabelID    string `json:"label_id"`
	RollNo     string `json:"roll_no"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	AWB        string `json:"awb_no"`
	Email      string `json:"email"`
	Phone      string `json:"phone_no"`
	ArrivedAt  string `json:"arrived_at"`
	ParcelNo   string `json:"parcel_no"`
	Picked     string `json:"picked"`
	Signature  string `json:"signature"`
	Status     string `json:"status"`
	MailStatus string `json:"mail_status"`
	MailTime   string `json:"mail_time"`
}

func NewRecordResponse(r domain.ParcelRecord) RecordResponse {
	return RecordResponse{
		SeqNo:      r.SeqNo,
		LabelID:    r.LabelID,
		RollNo:     r.RollNo,
		Name:       r.Name,
		Company:    r.Company,
		AWB:        r.AWB,
		Email:      r.Email,
		Phone:      r.Phone,
		ArrivedAt:  r.ArrivedAt,
		ParcelNo:   r.ParcelNo,
		Picked:     r.Picked,
		Signature:  r.Signature,
		Status:     r.Status,
		MailStatus: r.MailStatus,
		MailTime:   r.MailTime,
	}
}

type ListRecordsResponse struct {
	Archive string           `json:"archive,omitempty"`
	Records []RecordResponse `json:"records"`
}

// UpdateRecordRequest maps store column names (e.g. "Roll No") to new values.
// Unrecognized columns are ignored.
type UpdateRecordRequest map[string]string

type IntakeItemResponse struct {
	Filename string         `json:"filename"`
	RawText  string         `json:"raw_text"`
	Record   RecordResponse `json:"record"`
}

type IntakeResponse struct {
	Items []IntakeItemResponse `json:"items"`
}

type NotifyFailureResponse struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type NotifyResponse struct {
	Sent     []int                   `json:"sent"`
	Failures []NotifyFailureResponse `json:"failures"`
}

type ListArchivesResponse struct {
	Archives []string `json:"archives"`
}
