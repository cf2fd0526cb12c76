// Package dateutils provides the date normalization used by the SRI parser.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the normalized date layout (YYYY-MM-DD).
const DateLayoutISO = "2006-01-02"

// NormalizeSRIDate converts an SRI fechaEmision value (DD/MM/YYYY,
// single-digit day and month allowed) to ISO YYYY-MM-DD. A missing or
// malformed date, including an impossible calendar date, yields ""
// rather than an error; the parser keeps the rest of the document.
func NormalizeSRIDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return ""
	}

	day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	if year < 1000 {
		return ""
	}

	iso := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if _, err := ParseISODate(iso); err != nil {
		return ""
	}
	return iso
}

// ParseISODate parses a normalized YYYY-MM-DD value back to time.Time.
func ParseISODate(iso string) (time.Time, error) {
	return time.Parse(DateLayoutISO, iso)
}
