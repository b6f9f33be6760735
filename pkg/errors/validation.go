package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// mapIDRegex matches identifiers that are safe to use as storage keys and
// file basenames.
var mapIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateMapID validates a mind-map identifier for safety and correctness.
// Map IDs become file basenames and database keys, so the rules are
// intentionally conservative:
//   - No empty IDs
//   - Maximum length of 128 characters
//   - Letters, digits, dot, dash, underscore only; must start alphanumeric
//   - No path traversal sequences
func ValidateMapID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMapID, "map ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidMapID, "map ID too long (max 128 characters)")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidMapID, "map ID cannot contain path traversal sequences (..)")
	}
	if !mapIDRegex.MatchString(id) {
		return New(ErrCodeInvalidMapID, "invalid map ID: %q", id)
	}
	return nil
}

// ValidateNodeID validates a node identifier from an external payload.
// Identifiers generated by the editor are UUIDs, but imported snapshots may
// carry arbitrary IDs; control characters and null bytes are rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node ID too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID contains invalid control characters")
		}
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb color literals.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a color override string. Empty is allowed and
// means "derive from the subject palette".
func ValidateHexColor(c string) error {
	if c == "" {
		return nil
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", c)
	}
	return nil
}

// ValidateRenderFormat validates an export image format name.
func ValidateRenderFormat(format string) error {
	switch format {
	case "svg", "png", "dot":
		return nil
	}
	return New(ErrCodeUnsupported, "unsupported render format %q (want svg, png, or dot)", format)
}
