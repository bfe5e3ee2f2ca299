package payroll

import "testing"

func TestValidMonth(t *testing.T) {
	if !ValidMonth("2026-02") {
		t.Fatal("expected 2026-02 to be valid")
	}
	for _, month := range []string{"", "2026", "2026-13", "2026-2", "Feb 2026"} {
		if ValidMonth(month) {
			t.Fatalf("expected %q to be invalid", month)
		}
	}
}

func TestMonthOfDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-03-15", "2026-03"},
		{"2026-03-15T10:30:00Z", "2026-03"},
		{"2026/03/15", "2026-03"},
		{"15-03-2026", "2026-03"},
		{"15/03/2026", "2026-03"},
		{"not a date", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MonthOfDate(tc.in); got != tc.want {
			t.Fatalf("MonthOfDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMonthEnd(t *testing.T) {
	cases := []struct {
		month string
		want  string
	}{
		{"2026-01", "2026-01-31"},
		{"2026-02", "2026-02-28"},
		{"2024-02", "2024-02-29"},
		{"2026-04", "2026-04-30"},
		{"2026-12", "2026-12-31"},
	}
	for _, tc := range cases {
		got, err := MonthEnd(tc.month)
		if err != nil {
			t.Fatalf("MonthEnd(%q) error: %v", tc.month, err)
		}
		if got != tc.want {
			t.Fatalf("MonthEnd(%q) = %q, want %q", tc.month, got, tc.want)
		}
	}

	if _, err := MonthEnd("2026-13"); err == nil {
		t.Fatal("expected error for invalid month")
	}
}
