package models

import "time"

const (
	// DefaultFirstName is stored when the claim carries no first name.
	DefaultFirstName = "Telegram User"
	// DefaultLanguageCode is stored when the claim carries no language.
	DefaultLanguageCode = "en"

	// ReferralCodeLength is the fixed length of generated referral codes.
	ReferralCodeLength = 8
)

// User is the persisted profile document, keyed by the decimal Telegram user
// ID. tokens, referralCode, referredBy, referralsMade, connectedWallet and
// createdAt survive every profile sync; the claim-derived fields are
// refreshed on each successful validation.
type User struct {
	ID              string    `json:"user_id" example:"123456789"`
	Username        *string   `json:"username,omitempty" example:"johndoe"`
	FirstName       string    `json:"first_name" example:"John"`
	LastName        *string   `json:"last_name,omitempty" example:"Doe"`
	LanguageCode    string    `json:"language_code" example:"en"`
	Tokens          int64     `json:"tokens" example:"0"`
	ReferralCode    string    `json:"referral_code" example:"XK7Q2M9P"`
	ReferredBy      *string   `json:"referred_by,omitempty" example:"987654321"`
	ReferralsMade   int64     `json:"referrals_made" example:"0"`
	ConnectedWallet *string   `json:"connected_wallet,omitempty"`
	CreatedAt       time.Time `json:"created_at" example:"2024-03-15T14:30:00Z"`
	LastLogin       time.Time `json:"last_login" example:"2024-03-15T14:30:00Z"`
}

// ConnectWalletRequest is the body for attaching a TON wallet address.
type ConnectWalletRequest struct {
	Address string `json:"address" binding:"required" example:"EQD4FPq-PRD4YtG87wgL7AErgQwHUMFQ-JxyYw8jzBPhqjfH"`
}
