package services

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// bcrypt ignores everything past this many bytes
const maxPasswordBytes = 72

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeName keeps composed and decomposed spellings of the same name
// comparable under LIKE.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
