package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DocNumber builds a human-readable reference like "GA-20260115-4F2A" from a
// domain prefix, the current UTC date and a random suffix.  The suffix comes
// from a fresh UUID so numbers do not reveal how many documents exist.
func DocNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return prefix + "-" + time.Now().UTC().Format("20060102") + "-" + suffix
}
