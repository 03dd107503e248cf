package services

import (
	"testing"

	"parcel-intake-service/internal/domain"
)

func TestClassifyFullLabel(t *testing.T) {
	lines := []string{
		"FLIPKART LOGISTICS",
		"AWB 1234567890123",
		"Roll: 21691A3155",
		"+91 9876543210",
		"John Smith",
	}

	got := Classify(lines)

	want := domain.FieldMapping{
		Name:    "John Smith",
		Company: "FLIPKART LOGISTICS",
		Phone:   "9876543210",
		AWB:     "1234567890123",
		RollNo:  "21691A3155",
	}
	if got != want {
		t.Fatalf("Classify() = %+v, want %+v", got, want)
	}
}

func TestClassifyFirstMatchWinsPerField(t *testing.T) {
	lines := []string{
		"AWB 11111111111",
		"AWB 22222222222",
	}

	got := Classify(lines)

	if got.AWB != "11111111111" {
		t.Fatalf("AWB = %q, want first line's value %q", got.AWB, "11111111111")
	}
}

// A bare 10-digit number satisfies both the tracking and the phone pattern;
// the tracking rule runs first, so it wins. Pinned on purpose: this is the
// heuristic's documented precision limit, not a bug.
func TestClassifyTenDigitsResolveToAWB(t *testing.T) {
	got := Classify([]string{"9876543210"})

	if got.AWB != "9876543210" {
		t.Fatalf("AWB = %q, want %q", got.AWB, "9876543210")
	}
	if got.Phone != "" {
		t.Fatalf("Phone = %q, want empty (line already claimed by AWB)", got.Phone)
	}
}

func TestClassifyDiscardsShortLines(t *testing.T) {
	got := Classify([]string{"ab", " x ", "Jane Doe"})

	if got.Name != "Jane Doe" {
		t.Fatalf("Name = %q, want %q", got.Name, "Jane Doe")
	}
}

func TestClassifyStripsDisallowedCharacters(t *testing.T) {
	got := Classify([]string{"Roll#: 21691A3155!!"})

	if got.RollNo != "21691A3155" {
		t.Fatalf("RollNo = %q, want %q", got.RollNo, "21691A3155")
	}
}

func TestClassifyCompanyKeywordCaseInsensitive(t *testing.T) {
	got := Classify([]string{"via DELHIVERY surface"})

	if got.Company != "via DELHIVERY surface" {
		t.Fatalf("Company = %q, want whole line", got.Company)
	}
}

func TestClassifyEmptyAndUnmatchedInput(t *testing.T) {
	for _, lines := range [][]string{nil, {}, {"12"}, {"!!!@@@###"}} {
		got := Classify(lines)
		if got != (domain.FieldMapping{}) {
			t.Fatalf("Classify(%q) = %+v, want all empty", lines, got)
		}
	}
}

func TestClassifyLaterLinesFillRemainingFields(t *testing.T) {
	// Line one is claimed by the AWB rule only; the phone arrives later and
	// still lands in its own field.
	lines := []string{
		"11111111111",
		"+91 9876543210",
	}

	got := Classify(lines)

	if got.AWB != "11111111111" {
		t.Fatalf("AWB = %q, want %q", got.AWB, "11111111111")
	}
	if got.Phone != "9876543210" {
		t.Fatalf("Phone = %q, want %q", got.Phone, "9876543210")
	}
}
