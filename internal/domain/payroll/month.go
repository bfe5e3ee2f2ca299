package payroll

import "time"

// Month keys are YYYY-MM. Entry dates are usually ISO and can be matched
// by prefix; non-ISO dates from older manual bookkeeping are parsed and
// reformatted before comparison.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

func ValidMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// MonthOfDate extracts the month key from an entry date, or returns ""
// when the date cannot be interpreted.
func MonthOfDate(date string) string {
	if hasISOMonthPrefix(date) {
		return date[:7]
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, date); err == nil {
			return parsed.Format("2006-01")
		}
	}
	return ""
}

// MonthEnd returns the last calendar day of a month as YYYY-MM-DD.
func MonthEnd(month string) (string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return first.AddDate(0, 1, -1).Format("2006-01-02"), nil
}

func hasISOMonthPrefix(date string) bool {
	if len(date) < 7 {
		return false
	}
	for i := 0; i < 7; i++ {
		if i == 4 {
			if date[i] != '-' {
				return false
			}
			continue
		}
		if date[i] < '0' || date[i] > '9' {
			return false
		}
	}
	return true
}
