package status

import "strings"

// Received is recorded when a notification carries no usable status field.
const Received = "received"

// Terminal-success tags as reported by the gateway.
var successSet = map[string]struct{}{
	"paid":      {},
	"completed": {},
	"success":   {},
}

// Normalize lower-cases the raw gateway status and substitutes Received when
// the field is absent or blank. Unrecognized values are kept verbatim so the
// transition is still recorded.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Received
	}
	return s
}

func IsSuccess(s string) bool {
	_, ok := successSet[strings.ToLower(s)]
	return ok
}
