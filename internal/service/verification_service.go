package service

import (
	"context"
	"fmt"

	"address-verification-api/internal/models"
	"address-verification-api/internal/verification"

	"github.com/rs/zerolog"
)

// ErrEmptyAddress is returned when there is nothing to send to the validation service.
var ErrEmptyAddress = fmt.Errorf("service: address cannot be empty")

// LocationRepository interface for dependency injection
type LocationRepository interface {
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	UpdateLocation(ctx context.Context, loc *models.Location) error
}

// AddressValidator performs the round-trip to the validation service.
type AddressValidator interface {
	Validate(ctx context.Context, address string) (models.TransportResult, error)
}

// Verification is the outcome of verifying one address, with the location as it stands afterwards.
type Verification struct {
	verification.Result
	InputAddress string
	Location     *models.Location
}

// VerificationService standardizes and geocodes addresses against the validation service
type VerificationService struct {
	repo      LocationRepository
	validator AddressValidator
	engine    *verification.Engine
}

// NewVerificationService creates a new verification service
func NewVerificationService(repo LocationRepository, validator AddressValidator, engine *verification.Engine) *VerificationService {
	return &VerificationService{repo: repo, validator: validator, engine: engine}
}

// VerifyLocation verifies a stored location and saves whatever the verification changed, including the
// attempt audit fields.
func (s *VerificationService) VerifyLocation(ctx context.Context, id int64) (*Verification, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("service: no location store configured")
	}

	loc, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load location: %w", err)
	}

	v, err := s.verify(ctx, loc)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("service: failed to save location: %w", err)
	}

	return v, nil
}

// VerifyAddress verifies a free-form address without persisting anything.
func (s *VerificationService) VerifyAddress(ctx context.Context, in models.AddressInput) (*Verification, error) {
	loc := &models.Location{
		Street1:    in.Street1,
		Street2:    in.Street2,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
	}
	return s.verify(ctx, loc)
}

func (s *VerificationService) verify(ctx context.Context, loc *models.Location) (*Verification, error) {
	address := verification.AssembleAddress(loc.Address())
	if address == "" {
		return nil, ErrEmptyAddress
	}

	logger := zerolog.Ctx(ctx).With().Int64("location_id", loc.ID).Str("address", address).Logger()

	transport, err := s.validator.Validate(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("service: failed to call validation service: %w", err)
	}

	result, err := s.engine.Verify(address, transport, loc)
	if err != nil {
		logger.Error().Err(err).Int("status_code", transport.StatusCode).Msg("verification failed")
		return nil, fmt.Errorf("service: failed to reconcile response: %w", err)
	}

	logger.Info().
		Stringer("outcome", result.Outcome).
		Bool("geocoded", result.Geocoded).
		Int("alternatives", len(result.Alternatives)).
		Msg(result.Message)

	return &Verification{Result: result, InputAddress: address, Location: loc}, nil
}
