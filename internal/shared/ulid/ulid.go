package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. Used for report and request IDs.
var NewULID = func() string {
	return ulid.Make().String()
}

// IsValid reports whether s parses as a ULID.
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
