package domain

// SubjectUserRegistered is the event subject published after a successful
// registration. Credential delivery is decoupled from the registration
// workflow: a delivery worker consumes this event out-of-band.
const SubjectUserRegistered = "auth.user.registered"

// UserRegisteredEvent carries everything the delivery worker needs to send
// the activation email, including the one-time credentials.
type UserRegisteredEvent struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	TemporaryPassword string `json:"temporary_password"`
	ActivationCode    string `json:"activation_code"`
	ExpiresInMinutes  int    `json:"expires_in_minutes"`
}
