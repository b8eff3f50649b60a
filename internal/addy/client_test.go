package addy

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"address-verification-api/internal/models"
	"address-verification-api/internal/verification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		statusLine     string
		body           string
		expectedStatus string
	}{
		{
			name:           "match",
			status:         http.StatusOK,
			body:           `{"address": {"linzid": 2092233}}`,
			expectedStatus: "OK",
		},
		{
			name:           "service unavailable",
			status:         http.StatusServiceUnavailable,
			body:           `down for maintenance`,
			expectedStatus: "Service Unavailable",
		},
		{
			name:           "unauthorized",
			status:         http.StatusUnauthorized,
			body:           `{"message": "invalid key"}`,
			expectedStatus: "Unauthorized",
		},
		{
			name:           "custom reason phrase",
			status:         http.StatusServiceUnavailable,
			statusLine:     "HTTP/1.1 503 Down For Maintenance",
			body:           `maintenance`,
			expectedStatus: "Down For Maintenance",
		},
		{
			name:           "unknown code with reason phrase",
			status:         520,
			statusLine:     "HTTP/1.1 520 Web Server Returned an Unknown Error",
			body:           `origin error`,
			expectedStatus: "Web Server Returned an Unknown Error",
		},
		{
			name:           "known code without reason phrase",
			status:         http.StatusBadGateway,
			statusLine:     "HTTP/1.1 502",
			body:           `bad gateway`,
			expectedStatus: "Bad Gateway",
		},
		{
			name:           "unknown code without reason phrase",
			status:         520,
			statusLine:     "HTTP/1.1 520",
			body:           `origin error`,
			expectedStatus: "520",
		},
		{
			name:           "unknown code written by net/http",
			status:         520,
			body:           `origin error`,
			expectedStatus: "status code 520",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *http.Request
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
				if tt.statusLine == "" {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte(tt.body))
					return
				}
				writeRawResponse(t, w, tt.statusLine, tt.body)
			}))
			defer srv.Close()

			client := NewClient(srv.URL+"/", "my-key", "my-secret", time.Second)
			result, err := client.Validate(context.Background(), "80A Queen Street Auckland 1010")
			require.NoError(t, err)

			assert.Equal(t, tt.status, result.StatusCode)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.body, string(result.Body))

			require.NotNil(t, got)
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, "/validation", got.URL.Path)
			assert.Equal(t, "80A Queen Street Auckland 1010", got.URL.Query().Get("address"))
			assert.Equal(t, "my-key", got.URL.Query().Get("key"))
			assert.Equal(t, "my-secret", got.URL.Query().Get("secret"))
			assert.Equal(t, "application/json", got.Header.Get("Accept"))
		})
	}
}

func TestClient_Validate_UnknownStatusReachesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeRawResponse(t, w, "HTTP/1.1 520 Web Server Returned an Unknown Error", "")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "my-key", "my-secret", time.Second)
	transport, err := client.Validate(context.Background(), "80A Queen Street")
	require.NoError(t, err)

	result, err := verification.NewEngine(nil).Verify("80A Queen Street", transport, &models.Location{})
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeConnectionError, result.Outcome)
	assert.Equal(t, "Web Server Returned an Unknown Error", result.Message)
}

// writeRawResponse answers with a hand-written status line, which net/http's ResponseWriter cannot produce.
func writeRawResponse(t *testing.T, w http.ResponseWriter, statusLine, body string) {
	hj, ok := w.(http.Hijacker)
	require.True(t, ok)

	conn, buf, err := hj.Hijack()
	require.NoError(t, err)
	defer conn.Close()

	fmt.Fprintf(buf, "%s\r\nContent-Type: text/plain\r\nContent-Length: %d\r\nConnection: close\r\n\r\n%s",
		statusLine, len(body), body)
	require.NoError(t, buf.Flush())
}

func TestClient_Validate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, "my-key", "my-secret", time.Second)
	result, err := client.Validate(context.Background(), "80A Queen Street")
	require.NoError(t, err)

	assert.Equal(t, 0, result.StatusCode)
	assert.False(t, result.Success())
	assert.True(t, strings.HasPrefix(result.Status, "Connection failed: "))
	assert.NotContains(t, result.Status, "my-secret")
}

func TestClient_Validate_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, "my-key", "my-secret", time.Second)
	_, err := client.Validate(ctx, "80A Queen Street")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	client := NewClient("", "k", "s", time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
