package domain

// RecipientEntry is reference data from the externally maintained recipient
// directory. The intake pipeline only reads it.
type RecipientEntry struct {
	Name   string
	RollNo string
	Phone  string
	Email  string
}
