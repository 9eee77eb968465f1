// Package initdata implements verification of Telegram Mini Apps init-data
// payloads. Verification is a pure computation: no I/O, no shared state, the
// bot token is passed per call.
package initdata

import "time"

// User is the identity claim embedded in the init-data payload. It is
// untrusted input until the payload hash has been verified.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// Reason explains why verification failed. Empty on success.
type Reason string

const (
	ReasonMissingHash       Reason = "missing_hash"
	ReasonMissingUserData   Reason = "missing_user_data"
	ReasonMalformedUserJSON Reason = "malformed_user_json"
	ReasonHashMismatch      Reason = "hash_mismatch"
	ReasonExpired           Reason = "expired"
	ReasonInternalError     Reason = "internal_error"
)

// Verdict is the tagged result of Verify. Valid is true if and only if
// Claim is non-nil.
type Verdict struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
	Claim  *User  `json:"claim,omitempty"`

	// AuthDate is the payload issue time, zero when auth_date is absent.
	AuthDate time.Time `json:"-"`
	// Stale is set when the payload age exceeds Options.MaxAge. Unless
	// Options.EnforceAge is set, staleness does not invalidate the verdict.
	Stale bool `json:"-"`
	// StartParam carries the launch parameter (referral code) when present.
	StartParam string `json:"-"`
}

// Options tunes verification policy. The zero value validates the hash only.
type Options struct {
	// MaxAge is the staleness threshold for auth_date. Zero disables the
	// age computation entirely.
	MaxAge time.Duration
	// EnforceAge turns staleness from a flag into a rejection. Telegram's
	// contract does not require rejection, so this defaults to off and is a
	// deployment policy knob, not a protocol requirement.
	EnforceAge bool
	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}
