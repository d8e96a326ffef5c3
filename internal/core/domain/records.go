package domain

import (
	"encoding/json"
	"strconv"
)

// Ephemeral store key formats. These encode record identity and are part of
// the external contract: they must stay stable across versions.
const (
	activationKeyPrefix = "auth:activation_code:"
	attemptsKeyPrefix   = "auth:login_attempts:"
	recoveryKeyPrefix   = "auth:recovery_code:"
)

// ActivationKey returns the ephemeral store key for a user's activation code.
func ActivationKey(userID string) string { return activationKeyPrefix + userID }

// LoginAttemptsKey returns the ephemeral store key for an email's failed
// login counter.
func LoginAttemptsKey(email Email) string { return attemptsKeyPrefix + email.String() }

// RecoveryKey returns the ephemeral store key for an email's recovery code.
func RecoveryKey(email Email) string { return recoveryKeyPrefix + email.String() }

// ActivationRecord is the one-time code proving control of a newly registered
// email. Lives between registration and successful activation or TTL expiry.
type ActivationRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

// RecoveryRecord is the one-time code proving the right to reset a forgotten
// password. Lives between a recovery request and redemption or TTL expiry.
type RecoveryRecord struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

func (r ActivationRecord) Marshal() ([]byte, error) { return json.Marshal(r) }

func UnmarshalActivationRecord(data []byte) (ActivationRecord, error) {
	var r ActivationRecord
	err := json.Unmarshal(data, &r)
	return r, err
}

func (r RecoveryRecord) Marshal() ([]byte, error) { return json.Marshal(r) }

func UnmarshalRecoveryRecord(data []byte) (RecoveryRecord, error) {
	var r RecoveryRecord
	err := json.Unmarshal(data, &r)
	return r, err
}

// EncodeAttempts serializes the consecutive-failure counter.
func EncodeAttempts(n int) []byte { return []byte(strconv.Itoa(n)) }

// DecodeAttempts parses a stored counter. A value that does not parse is
// treated as zero rather than an error: a corrupt counter must never lock an
// account out permanently.
func DecodeAttempts(data []byte) int {
	n, err := strconv.Atoi(string(data))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
