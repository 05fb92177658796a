package corpus

import "testing"

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month int
		day   int
	}{
		{"2024-01-15", 2024, 1, 15},
		{"2024-01-15T10:30:00Z", 2024, 1, 15},
		{"2024-01-15 10:30:00", 2024, 1, 15},
		{"January 15, 2024", 2024, 1, 15},
	}
	for _, tt := range tests {
		d := ParseDate(tt.input)
		if !d.Valid {
			t.Errorf("ParseDate(%q) should be valid", tt.input)
			continue
		}
		if d.Time.Year() != tt.year || int(d.Time.Month()) != tt.month || d.Time.Day() != tt.day {
			t.Errorf("ParseDate(%q) = %v, want %d-%d-%d", tt.input, d.Time, tt.year, tt.month, tt.day)
		}
	}
}

func TestParseDateInvalidPreservesRaw(t *testing.T) {
	for _, input := range []string{"not-a-date", "15/01/2024", ""} {
		d := ParseDate(input)
		if d.Valid {
			t.Errorf("ParseDate(%q) should be invalid", input)
		}
		if d.Raw != input {
			t.Errorf("ParseDate(%q).Raw = %q, want input preserved", input, d.Raw)
		}
	}
}

func TestDateCompare(t *testing.T) {
	earlier := ParseDate("2023-06-01")
	later := ParseDate("2024-01-01")
	invalid := ParseDate("garbage")

	if c := earlier.Compare(later); c != -1 {
		t.Errorf("earlier.Compare(later) = %d, want -1", c)
	}
	if c := later.Compare(earlier); c != 1 {
		t.Errorf("later.Compare(earlier) = %d, want 1", c)
	}
	if c := earlier.Compare(earlier); c != 0 {
		t.Errorf("equal dates Compare = %d, want 0", c)
	}

	// The invalid sentinel compares equal to everything, in both positions.
	if c := invalid.Compare(later); c != 0 {
		t.Errorf("invalid.Compare(valid) = %d, want 0", c)
	}
	if c := later.Compare(invalid); c != 0 {
		t.Errorf("valid.Compare(invalid) = %d, want 0", c)
	}
	if c := invalid.Compare(invalid); c != 0 {
		t.Errorf("invalid.Compare(invalid) = %d, want 0", c)
	}
}

func TestDateFormatFallsBackToRaw(t *testing.T) {
	if got := ParseDate("2024-01-15").Format("Jan 2, 2006"); got != "Jan 15, 2024" {
		t.Errorf("Format = %q, want %q", got, "Jan 15, 2024")
	}
	if got := ParseDate("soon").Format("Jan 2, 2006"); got != "soon" {
		t.Errorf("Format of invalid date = %q, want raw text", got)
	}
}
