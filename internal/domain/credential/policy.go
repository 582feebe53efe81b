package credential

import (
	"time"
)

// Disclosure state machine: Active → Exhausted | Expired, both terminal.
// A credential with neither limit set stays Active forever; open-ended
// sharing is a supported configuration, not a missing one.
type State string

const (
	StateActive    State = "active"
	StateExpired   State = "expired"   // absolute expiry reached
	StateExhausted State = "exhausted" // view cap reached
)

// Inert reports whether decryption must be refused permanently.
func (s State) Inert() bool {
	return s != StateActive
}

// Evaluate computes the disclosure state of a credential at a given instant.
// This is the read half of checkAndConsume; the claim itself happens in the
// store as one atomic update so two concurrent viewers of a one-view
// credential cannot both observe Active.
func Evaluate(c *Credential, now time.Time) State {
	if c.MaxViews != nil && c.ViewCount >= *c.MaxViews {
		return StateExhausted
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return StateExpired
	}
	return StateActive
}
