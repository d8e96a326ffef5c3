package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/clinicore/identity-service/docs"
	"github.com/clinicore/identity-service/internal/api/handler"
	"github.com/clinicore/identity-service/internal/api/middleware"
	"github.com/clinicore/identity-service/internal/core/domain"
	"github.com/clinicore/identity-service/internal/core/ports"
	"github.com/clinicore/identity-service/internal/core/service"
	"github.com/clinicore/identity-service/internal/infrastructure/config"
	mongodb "github.com/clinicore/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicore/identity-service/internal/infrastructure/db/redis"
	"github.com/clinicore/identity-service/internal/infrastructure/policy"
	"github.com/clinicore/identity-service/internal/infrastructure/security"
)

// Dependencies are the externally-constructed collaborators the router wires
// into the workflows.
type Dependencies struct {
	Mongo    *mongo.Database
	Redis    *redis.Client
	Events   ports.EventPublisher
	Renderer ports.TemplateRenderer
	Sender   ports.NotificationSender
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Infrastructure adapters ---
	users := mongodb.NewUserRepository(deps.Mongo)
	profiles := mongodb.NewProfileRepository(deps.Mongo)
	store := redisdb.NewStateStore(deps.Redis)
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	issuer := security.NewJWTIssuer(cfg.Auth.JWTSecret)
	passwords := security.NewPasswordGenerator()
	codes := security.NewCodeGenerator()
	registrars := parseRoles(cfg.Auth.RegistrarRoles, log)
	authz := policy.NewRegistrarPolicy(registrars)
	emailPolicy := policy.NewStaffEmailPolicy(cfg.Auth.StaffEmailDomains)

	// --- Workflows ---
	authService := service.NewAuthService(
		users, hasher, issuer, store,
		cfg.Auth.LoginAttemptLimit, cfg.Auth.LockoutDuration, cfg.Auth.TokenTTL,
		log,
	)
	registrationService := service.NewRegistrationService(
		users, profiles, hasher, passwords, codes, store,
		authz, emailPolicy, deps.Events, log,
	)
	passwordService := service.NewPasswordService(
		users, hasher, codes, store, deps.Renderer, deps.Sender, log,
	)

	authHandler := handler.NewAuthHandler(authService, registrationService, passwordService)
	authMiddleware := middleware.Auth(issuer)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/activate", authHandler.Activate)
	e.POST("/auth/password/recovery", authHandler.RecoverPassword)
	e.POST("/auth/password/reset", authHandler.ResetPassword)
	e.PUT("/auth/password", authHandler.UpdatePassword, authMiddleware)
	e.POST("/auth/register", authHandler.Register,
		authMiddleware, middleware.RBAC(rolesToStrings(registrars)...))

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

func parseRoles(raw []string, log zerolog.Logger) []domain.Role {
	roles := make([]domain.Role, 0, len(raw))
	for _, s := range raw {
		role, err := domain.ParseRole(s)
		if err != nil {
			log.Warn().Str("role", s).Msg("ignoring unknown registrar role")
			continue
		}
		roles = append(roles, role)
	}
	return roles
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
