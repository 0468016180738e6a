package caldate

import (
	"fmt"
	"strconv"
	"strings"
)

// Display formats d as dd/mm/yyyy, the format typed in the admin dashboard.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// DisplayISO converts an ISO string to dd/mm/yyyy without validating it.
func DisplayISO(iso string) string {
	if iso == "" {
		return ""
	}
	parts := strings.SplitN(iso, "-", 3)
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// MaskDisplay applies the dd/mm/yyyy typing mask: strips everything but
// digits and '/', inserts the separators after the day and the month and
// caps the result at 10 characters.
func MaskDisplay(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '/' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	formatted := cleaned
	if len(cleaned) >= 2 && charAt(cleaned, 2) != '/' {
		formatted = cleaned[:2] + "/" + cleaned[2:]
	}
	// a máscara olha o texto limpo, mas corta o já formatado
	if len(cleaned) >= 5 && charAt(cleaned, 5) != '/' {
		formatted = formatted[:5] + "/" + formatted[5:]
	}
	if len(formatted) > 10 {
		formatted = formatted[:10]
	}
	return formatted
}

func charAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// FromDisplay converts a dd/mm/yyyy (or dd/mm/yy) text to a Date. Texts
// shorter than 8 characters are incomplete and yield ok=false; two-digit
// years mean 2000+yy.
func FromDisplay(text string) (Date, bool) {
	cleaned := strings.TrimSpace(text)
	if len(cleaned) < 8 {
		return Date{}, false
	}

	parts := strings.Split(cleaned, "/")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Date{}, false
	}
	dayStr, monthStr, yearStr := parts[0], parts[1], parts[2]

	day, err1 := strconv.Atoi(dayStr)
	month, err2 := strconv.Atoi(monthStr)
	year, err3 := strconv.Atoi(yearStr)
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, false
	}

	if len(yearStr) == 2 {
		year += 2000
	}

	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 {
		return Date{}, false
	}

	d, err := Parse(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// ParseFlexible accepts either the ISO form or the display mask.
func ParseFlexible(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	if d, err := Parse(s); err == nil {
		return d, true
	}
	return FromDisplay(MaskDisplay(s))
}
