package model

import "time"

// Token represents an issued API token.
// The plaintext secret is never stored; only its argon2id hash.
type Token struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	SecretHash string     `json:"-"` // Never serialize
	Prefix     string     `json:"prefix"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// IsRevoked returns true if the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}
