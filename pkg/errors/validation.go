package errors

import "unicode"

// maxNodeIDLength bounds identifier size so a hostile topology file
// cannot bloat the engine's lookup table with megabyte keys.
const maxNodeIDLength = 256

// ValidateNodeID validates an external node identifier.
//
// The engine treats identifiers as opaque, so the rules are intentionally
// minimal:
//   - No empty identifiers
//   - No control characters (they corrupt terminal rendering and logs)
//   - Maximum length of 256 bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidInput, "node id too long (max %d bytes)", maxNodeIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}

	return nil
}
