package main

import (
	"context"

	"address-verification-api/internal/addy"
	"address-verification-api/internal/config"
	_ "address-verification-api/internal/docs"
	"address-verification-api/internal/handler"
	"address-verification-api/internal/logging"
	"address-verification-api/internal/repository"
	"address-verification-api/internal/service"
	"address-verification-api/internal/verification"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//	@title			Address Verification API
//	@version		1.0
//	@description	Standardizes and geocodes addresses with the Addy validation service.
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger, err := logging.New(config.LogLevel, config.LogPretty)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create logger")
	}
	log.Logger = logger

	if config.DBSource == "" {
		log.Fatal().Msg("DB_SOURCE is required")
	}
	if err := config.RequireAddyCredentials(); err != nil {
		log.Fatal().Err(err).Msg("cannot start without Addy credentials")
	}

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)
	client := addy.NewClient(config.AddyBaseURL, config.AddyAPIKey, config.AddyAPISecret, config.AddyTimeout)
	engine := verification.NewEngine(nil)

	verificationService := service.NewVerificationService(repo, client, engine)
	verifyHandler := handler.NewVerifyHandler(verificationService)

	r := handler.NewRouter(logger, verifyHandler)

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
