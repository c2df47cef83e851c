package analytics

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// GACookie is the cookie the GA4 tag stores its client id in.
const GACookie = "_ga"

// ClientIDFromCookie extracts the client id from a "_ga" cookie value
// (GA1.2.<random>.<timestamp>). It generates a fresh id when the cookie
// is missing or malformed.
func ClientIDFromCookie(cookie string) string {
	parts := strings.Split(cookie, ".")
	if len(parts) >= 4 && parts[2] != "" && parts[3] != "" {
		return parts[2] + "." + parts[3]
	}
	return NewClientID()
}

// NewClientID returns an id in the GA "<random>.<unix seconds>" shape.
func NewClientID() string {
	return fmt.Sprintf("%d.%d", rand.Uint32(), time.Now().Unix())
}
