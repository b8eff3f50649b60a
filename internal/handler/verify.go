package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"address-verification-api/internal/models"
	"address-verification-api/internal/service"
	"address-verification-api/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// VerifyHandler handles address verification requests
type VerifyHandler struct {
	service VerificationService
}

// VerificationService interface for dependency injection
type VerificationService interface {
	VerifyLocation(ctx context.Context, id int64) (*service.Verification, error)
	VerifyAddress(ctx context.Context, in models.AddressInput) (*service.Verification, error)
}

// VerificationResponse is the JSON body returned for a verification.
type VerificationResponse struct {
	Outcome      verification.Outcome          `json:"outcome" swaggertype:"string" enums:"none,standardized,connection_error"`
	Message      string                        `json:"message"`
	InputAddress string                        `json:"input_address"`
	Geocoded     bool                          `json:"geocoded"`
	Prefix       string                        `json:"prefix,omitempty"`
	Alternatives []models.AlternativeReference `json:"alternatives,omitempty"`
	Location     *models.Location              `json:"location"`
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(svc VerificationService) *VerifyHandler {
	return &VerifyHandler{service: svc}
}

// VerifyLocation handles POST /locations/:id/verify requests
//
//	@Summary	Verify a stored location
//	@Tags		verification
//	@Produce	json
//	@Param		id	path		int	true	"Location id"
//	@Success	200	{object}	VerificationResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Failure	502	{object}	map[string]string
//	@Router		/locations/{id}/verify [post]
func (h *VerifyHandler) VerifyLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location id"})
		return
	}

	result, err := h.service.VerifyLocation(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newVerificationResponse(result))
}

// VerifyAddress handles GET /verify requests
//
//	@Summary	Verify a free-form address without storing it
//	@Tags		verification
//	@Produce	json
//	@Param		street1		query		string	false	"Street line 1"
//	@Param		street2		query		string	false	"Street line 2"
//	@Param		city		query		string	false	"City"
//	@Param		state		query		string	false	"State or region"
//	@Param		postal_code	query		string	false	"Postal code"
//	@Success	200			{object}	VerificationResponse
//	@Failure	400			{object}	map[string]string
//	@Failure	502			{object}	map[string]string
//	@Router		/verify [get]
func (h *VerifyHandler) VerifyAddress(c *gin.Context) {
	var in models.AddressInput
	if err := c.ShouldBindQuery(&in); err != nil || in.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing address query parameters"})
		return
	}

	result, err := h.service.VerifyAddress(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newVerificationResponse(result))
}

func (h *VerifyHandler) fail(c *gin.Context, err error) {
	var parseErr *verification.CoordinateParseError

	switch {
	case errors.Is(err, models.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
	case errors.Is(err, service.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "address cannot be empty"})
	case errors.Is(err, verification.ErrMalformedResponse), errors.As(err, &parseErr):
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("validation service returned an unusable response")
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid response from validation service"})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func newVerificationResponse(v *service.Verification) VerificationResponse {
	return VerificationResponse{
		Outcome:      v.Outcome,
		Message:      v.Message,
		InputAddress: v.InputAddress,
		Geocoded:     v.Geocoded,
		Prefix:       v.Prefix,
		Alternatives: v.Alternatives,
		Location:     v.Location,
	}
}
