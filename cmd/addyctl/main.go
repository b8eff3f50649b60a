package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"address-verification-api/internal/addy"
	"address-verification-api/internal/config"
	"address-verification-api/internal/logging"
	"address-verification-api/internal/models"
	"address-verification-api/internal/repository"
	"address-verification-api/internal/service"
	"address-verification-api/internal/verification"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	configPath string
	input      models.AddressInput
)

var rootCmd = &cobra.Command{
	Use:           "addyctl",
	Short:         "addyctl - verify addresses against the Addy validation service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Verify a free-form address without touching the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if input.Empty() {
			return fmt.Errorf("at least one of --street1, --street2, --city, --state, --postal-code is required")
		}

		svc, ctx, cleanup, err := newService(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := svc.VerifyAddress(ctx, input)
		if err != nil {
			return err
		}
		printVerification(cmd.OutOrStdout(), result)
		return nil
	},
}

var locationCmd = &cobra.Command{
	Use:   "location <id>",
	Short: "Verify a stored location and save the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid location id %q", args[0])
		}

		svc, ctx, cleanup, err := newService(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := svc.VerifyLocation(ctx, id)
		if err != nil {
			return err
		}
		printVerification(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./configs", "Directory containing app.env")

	addressCmd.Flags().StringVar(&input.Street1, "street1", "", "Street line 1")
	addressCmd.Flags().StringVar(&input.Street2, "street2", "", "Street line 2")
	addressCmd.Flags().StringVar(&input.City, "city", "", "City")
	addressCmd.Flags().StringVar(&input.State, "state", "", "State or region")
	addressCmd.Flags().StringVar(&input.PostalCode, "postal-code", "", "Postal code")

	rootCmd.AddCommand(addressCmd)
	rootCmd.AddCommand(locationCmd)
}

// newService builds the verification service and a context carrying its logger.
// withStore connects to the database.
func newService(ctx context.Context, withStore bool) (*service.VerificationService, context.Context, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.RequireAddyCredentials(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		return nil, nil, nil, err
	}
	ctx = logger.WithContext(ctx)

	client := addy.NewClient(cfg.AddyBaseURL, cfg.AddyAPIKey, cfg.AddyAPISecret, cfg.AddyTimeout)
	engine := verification.NewEngine(nil)

	if !withStore {
		return service.NewVerificationService(nil, client, engine), ctx, func() {}, nil
	}

	if cfg.DBSource == "" {
		return nil, nil, nil, fmt.Errorf("DB_SOURCE is required")
	}
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cannot connect to db: %w", err)
	}

	return service.NewVerificationService(repository.NewRepository(pool), client, engine), ctx, pool.Close, nil
}

func printVerification(w io.Writer, v *service.Verification) {
	fmt.Fprintf(w, "Outcome:  %s\n", v.Outcome)
	fmt.Fprintf(w, "Message:  %s\n", v.Message)
	fmt.Fprintf(w, "Input:    %s\n", v.InputAddress)
	if v.Prefix != "" {
		fmt.Fprintf(w, "Prefix:   %s\n", v.Prefix)
	}
	for i, alt := range v.Alternatives {
		fmt.Fprintf(w, "  %d. %s\n", i+1, alt.Label)
	}

	if v.Outcome != verification.OutcomeStandardized || v.Location == nil {
		return
	}
	loc := v.Location
	fmt.Fprintf(w, "Street1:  %s\n", loc.Street1)
	fmt.Fprintf(w, "Street2:  %s\n", loc.Street2)
	fmt.Fprintf(w, "City:     %s\n", loc.City)
	fmt.Fprintf(w, "Postcode: %s\n", loc.PostalCode)
	if v.Geocoded {
		fmt.Fprintf(w, "Position: %f, %f\n", *loc.Latitude, *loc.Longitude)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
