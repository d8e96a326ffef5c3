package handler

import "time"

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type patientProfileRequest struct {
	Document  string `json:"document"   validate:"required"`
	Phone     string `json:"phone"      validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"` // YYYY-MM-DD
}

type doctorProfileRequest struct {
	LicenseNumber   string `json:"license_number" validate:"required"`
	ExperienceYears int    `json:"experience_years"`
	Specialty       string `json:"specialty" validate:"required"`
	Bio             string `json:"bio"`
}

type registerRequest struct {
	FirstName string                 `json:"first_name" validate:"required"`
	LastName  string                 `json:"last_name"  validate:"required"`
	Email     string                 `json:"email"      validate:"required,email"`
	Role      string                 `json:"role"       validate:"required,oneof=patient doctor receptionist"`
	Patient   *patientProfileRequest `json:"patient,omitempty"`
	Doctor    *doctorProfileRequest  `json:"doctor,omitempty"`
}

type registerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
}

type activateRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6"`
}

type recoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Code        string `json:"code"         validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
