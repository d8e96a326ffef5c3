// Command createadmin creates the initial admin account. It is meant to run
// once, interactively, at system setup; the temporary password is delivered
// synchronously before the command exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/clinicore/identity-service/internal/core/ports"
	"github.com/clinicore/identity-service/internal/core/service"
	"github.com/clinicore/identity-service/internal/infrastructure/config"
	mongodb "github.com/clinicore/identity-service/internal/infrastructure/db/mongo"
	"github.com/clinicore/identity-service/internal/infrastructure/notification"
	"github.com/clinicore/identity-service/internal/infrastructure/policy"
	"github.com/clinicore/identity-service/internal/infrastructure/security"
	"github.com/clinicore/identity-service/pkg/logger"
)

func main() {
	firstName := flag.String("first-name", "", "admin first name")
	lastName := flag.String("last-name", "", "admin last name")
	email := flag.String("email", "", "admin email (must match the staff domain policy)")
	flag.Parse()

	if *firstName == "" || *lastName == "" || *email == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -first-name NAME -last-name NAME -email EMAIL")
		os.Exit(2)
	}

	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Service: "createadmin", Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	users := mongodb.NewUserRepository(db)

	renderer, err := notification.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("template initialisation failed")
	}

	admin := service.NewAdminService(
		users,
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		security.NewPasswordGenerator(),
		policy.NewStaffEmailPolicy(cfg.Auth.StaffEmailDomains),
		renderer,
		newSender(cfg.Mailer, log),
		log,
	)

	user, err := admin.CreateInitialAdmin(ctx, *firstName, *lastName, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	fmt.Printf("admin %s created (id %s); temporary password sent to %s\n",
		user.Email, user.ID, user.Email)
}

func newSender(cfg config.MailerConfig, log zerolog.Logger) ports.NotificationSender {
	switch cfg.Provider {
	case "mailersend":
		return notification.NewMailerSendSender(cfg.APIKey, cfg.FromName, cfg.FromEmail)
	case "smtp":
		return notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.FromEmail)
	default:
		return notification.NewDevSender(log)
	}
}
