package domain

// FieldMapping is the typed output of label classification. Fields the
// heuristics never matched remain empty strings.
type FieldMapping struct {
	Name    string
	Company string
	Phone   string
	AWB     string
	RollNo  string
}

// Record converts a classification result into a partial ledger record.
func (f FieldMapping) Record() ParcelRecord {
	return ParcelRecord{
		Name:    f.Name,
		Company: f.Company,
		Phone:   f.Phone,
		AWB:     f.AWB,
		RollNo:  f.RollNo,
	}
}
