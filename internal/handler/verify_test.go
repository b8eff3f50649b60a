package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"address-verification-api/internal/models"
	"address-verification-api/internal/service"
	"address-verification-api/internal/verification"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVerificationService is a mock implementation of the VerificationService interface
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) VerifyLocation(ctx context.Context, id int64) (*service.Verification, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*service.Verification)
	return v, args.Error(1)
}

func (m *MockVerificationService) VerifyAddress(ctx context.Context, in models.AddressInput) (*service.Verification, error) {
	args := m.Called(ctx, in)
	v, _ := args.Get(0).(*service.Verification)
	return v, args.Error(1)
}

func standardized() *service.Verification {
	return &service.Verification{
		Result: verification.Result{
			Outcome:  verification.OutcomeStandardized,
			Message:  "Verified with Addy to match LINZ: 2092233. Input address: 80A Queen Street Auckland 1010. Coordinates updated.",
			Geocoded: true,
		},
		InputAddress: "80A Queen Street Auckland 1010",
		Location:     &models.Location{ID: 42, Street1: "80A Queen Street", City: "Auckland", PostalCode: "1010"},
	}
}

func TestVerifyHandler_VerifyLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		id              string
		mockResult      *service.Verification
		mockError       error
		expectCall      bool
		expectedStatus  int
		expectedOutcome string
		expectedError   string
	}{
		{
			name:           "invalid id",
			id:             "abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid location id",
		},
		{
			name:            "standardized",
			id:              "42",
			mockResult:      standardized(),
			expectCall:      true,
			expectedStatus:  http.StatusOK,
			expectedOutcome: "standardized",
		},
		{
			name: "connection error is still a result",
			id:   "42",
			mockResult: &service.Verification{
				Result:   verification.Result{Outcome: verification.OutcomeConnectionError, Message: "Service Unavailable"},
				Location: &models.Location{ID: 42},
			},
			expectCall:      true,
			expectedStatus:  http.StatusOK,
			expectedOutcome: "connection_error",
		},
		{
			name:           "not found",
			id:             "42",
			mockError:      fmt.Errorf("service: failed to load location: %w", models.ErrLocationNotFound),
			expectCall:     true,
			expectedStatus: http.StatusNotFound,
			expectedError:  "location not found",
		},
		{
			name:           "malformed response",
			id:             "42",
			mockError:      fmt.Errorf("service: failed to reconcile response: %w", &verification.MalformedResponseError{Err: fmt.Errorf("unexpected end of JSON input")}),
			expectCall:     true,
			expectedStatus: http.StatusBadGateway,
			expectedError:  "invalid response from validation service",
		},
		{
			name:           "coordinate parse failure",
			id:             "42",
			mockError:      fmt.Errorf("service: failed to reconcile response: %w", &verification.CoordinateParseError{Axis: "longitude", Value: "abc"}),
			expectCall:     true,
			expectedStatus: http.StatusBadGateway,
			expectedError:  "invalid response from validation service",
		},
		{
			name:           "service error",
			id:             "42",
			mockError:      assert.AnError,
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockVerificationService)
			router := NewRouter(zerolog.Nop(), NewVerifyHandler(mockSvc))

			if tt.expectCall {
				mockSvc.On("VerifyLocation", mock.Anything, int64(42)).Return(tt.mockResult, tt.mockError)
			}

			// Execute
			req := httptest.NewRequest(http.MethodPost, "/locations/"+tt.id+"/verify", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Equal(t, tt.expectedOutcome, body["outcome"])
				assert.Equal(t, tt.mockResult.Message, body["message"])
				assert.NotNil(t, body["location"])
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestVerifyHandler_VerifyAddress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          string
		expectedInput  *models.AddressInput
		mockResult     *service.Verification
		mockError      error
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "missing query parameters",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "missing address query parameters"},
		},
		{
			name:  "ambiguous",
			query: "street1=80+Queen+Street&city=Auckland",
			expectedInput: &models.AddressInput{
				Street1: "80 Queen Street",
				City:    "Auckland",
			},
			mockResult: &service.Verification{
				Result: verification.Result{
					Outcome:      verification.OutcomeNone,
					Message:      "Not verified: Multiple matches80 Queen Street; 80B Queen Street; ",
					Alternatives: []models.AlternativeReference{{Label: "80 Queen Street"}, {Label: "80B Queen Street"}},
				},
				InputAddress: "80 Queen Street Auckland",
			},
			expectedStatus: http.StatusOK,
			expectedBody: map[string]interface{}{
				"outcome":       "none",
				"message":       "Not verified: Multiple matches80 Queen Street; 80B Queen Street; ",
				"input_address": "80 Queen Street Auckland",
				"geocoded":      false,
				"alternatives": []interface{}{
					map[string]interface{}{"id": nil, "a": "80 Queen Street"},
					map[string]interface{}{"id": nil, "a": "80B Queen Street"},
				},
				"location": nil,
			},
		},
		{
			name:  "blank address",
			query: "state=+",
			expectedInput: &models.AddressInput{
				State: " ",
			},
			mockError:      service.ErrEmptyAddress,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]interface{}{"error": "address cannot be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockVerificationService)
			handler := NewVerifyHandler(mockSvc)

			if tt.expectedInput != nil {
				mockSvc.On("VerifyAddress", mock.Anything, *tt.expectedInput).Return(tt.mockResult, tt.mockError)
			}

			// Create request
			req := httptest.NewRequest(http.MethodGet, "/verify?"+tt.query, nil)
			w := httptest.NewRecorder()

			// Create Gin context
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			// Execute
			handler.VerifyAddress(c)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody map[string]interface{}
			err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&actualBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, actualBody)

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(zerolog.Nop(), NewVerifyHandler(new(MockVerificationService)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderXRequestID, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(HeaderXRequestID))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
