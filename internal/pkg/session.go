package pkg

import "github.com/google/uuid"

// GenerateSessionID - generates a new unique session ID.
func GenerateSessionID() string {
	return uuid.NewString()
}

// NormalizeSessionID - returns the canonical form of id. Braced, urn and undashed
// spellings of the same UUID map to one session.
func NormalizeSessionID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}

	return parsed.String(), true
}

// IsValidSessionID - reports whether id is in the canonical form produced by GenerateSessionID.
func IsValidSessionID(id string) bool {
	normalized, ok := NormalizeSessionID(id)
	return ok && normalized == id
}
