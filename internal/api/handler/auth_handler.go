package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/identity-service/internal/api/metrics"
	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
)

// AuthHandler exposes the authentication workflows over HTTP.
type AuthHandler struct {
	auth         ports.AuthService
	registration ports.RegistrationService
	passwords    ports.PasswordService
}

func NewAuthHandler(auth ports.AuthService, registration ports.RegistrationService, passwords ports.PasswordService) *AuthHandler {
	return &AuthHandler{auth: auth, registration: registration, passwords: passwords}
}

// Login authenticates a user and returns a signed access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
		ExpiresAt:   token.ExpiresAt,
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountBlocked):
		return "blocked"
	case errors.Is(err, domain.ErrUserInactive):
		return "inactive"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidEmail):
		return "invalid_credentials"
	default:
		return "error"
	}
}

// Register creates a new inactive identity. Requires an authenticated actor
// whose role is authorized to register.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	_, actorRole, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.RegisterUserInput{
		ActorRole: actorRole,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	}
	if req.Patient != nil {
		birthDate, err := time.Parse("2006-01-02", req.Patient.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		input.Patient = &ports.PatientProfileInput{
			Document:  req.Patient.Document,
			Phone:     req.Patient.Phone,
			BirthDate: birthDate,
		}
	}
	if req.Doctor != nil {
		input.Doctor = &ports.DoctorProfileInput{
			LicenseNumber:   req.Doctor.LicenseNumber,
			ExperienceYears: req.Doctor.ExperienceYears,
			Specialty:       req.Doctor.Specialty,
			Bio:             req.Doctor.Bio,
		}
	}

	user, err := h.registration.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email.String(),
		Role:      string(user.Role),
		Active:    user.Active,
	})
}

// Activate redeems an activation code.
//
// @Summary      Activate an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      activateRequest  true  "Email and activation code"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Router       /auth/activate [post]
func (h *AuthHandler) Activate(c echo.Context) error {
	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.registration.Activate(c.Request().Context(), req.Email, req.Code); err != nil {
		metrics.ActivationsTotal.WithLabelValues(activationResult(err)).Inc()
		return err
	}

	metrics.ActivationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "account activated"})
}

func activationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivationCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidActivationCode):
		return "mismatch"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// RecoverPassword issues a one-time recovery code.
//
// @Summary      Request a password recovery code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      recoveryRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /auth/password/recovery [post]
func (h *AuthHandler) RecoverPassword(c echo.Context) error {
	var req recoveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	meta := ports.RecoveryRequestMeta{
		RequestedAt: time.Now().UTC(),
		IP:          c.RealIP(),
		UserAgent:   c.Request().UserAgent(),
	}
	if err := h.passwords.RequestRecovery(c.Request().Context(), req.Email, meta); err != nil {
		return err
	}

	metrics.RecoveryRequestsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "recovery code sent"})
}

// ResetPassword redeems a recovery code and replaces the password.
//
// @Summary      Reset a forgotten password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Failure      410   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.passwords.Reset(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset"})
}

// UpdatePassword changes the password of the authenticated user.
//
// @Summary      Change the current password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.passwords.Update(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}
