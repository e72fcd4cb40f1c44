// Package ids generates story and passage identifiers.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// NewIFID returns a fresh IFID for a story. The Treaty of Babel wants the
// uppercase UUID form, which is also what Twine writes into archives.
func NewIFID() string {
	return strings.ToUpper(uuid.NewString())
}

// PassageID derives a stable identifier for a passage from its story's
// IFID and the passage name, so re-running a conversion yields the same
// IDs for unchanged passages.
func PassageID(ifid, passageName string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("twine://"+ifid+"/"+passageName)).String()
}

// ValidIFID reports whether s parses as a UUID, case-insensitively.
func ValidIFID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
