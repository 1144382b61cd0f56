package main

import (
	"context"
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	"hotel/shared/logger"
	"hotel/shared/validator"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration command (up/down/drop/step-up/seed) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	var err error

	switch os.Args[1] {
	case "up":
		err = helper.Up(cfg)
	case "down":
		err = helper.Down(cfg)
	case "drop":
		err = helper.Drop(cfg)
	case "step-up":
		err = helper.StepUp(cfg)
	case "seed":
		err = seed(cfg)
	default:
		log.Fatal().Str("command", os.Args[1]).Msg("Invalid command. Use 'up', 'down', 'drop', 'step-up' or 'seed'")
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Migration command failed")
	}
}

// seed creates the first admin account from AUTH_SEED_ADMIN_*.
func seed(cfg *config.Config) error {
	admin := cfg.Auth.SeedAdmin
	if admin.Email == constant.Empty || admin.Password == constant.Empty {
		log.Fatal().Msg("AUTH_SEED_ADMIN_EMAIL and AUTH_SEED_ADMIN_PASSWORD are required")
	}

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, constant.SystemUser)

	req := dto.CreateUserRequest{
		Email:    admin.Email,
		Password: admin.Password,
		FullName: admin.FullName,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	created, err := di.InitializeUserService().Seed(ctx, req)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if created {
		log.Info().Str("email", admin.Email).Msg("Admin account created")
	}

	return nil
}
