package addy

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"address-verification-api/internal/models"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the Addy API root.
const DefaultBaseURL = "https://api.addy.co.nz/"

// maxBodySize bounds how much of a reply is read.
const maxBodySize = 1 << 20

// Client calls the Addy address validation endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
}

// NewClient creates a client. The key and secret are sent as given.
func NewClient(baseURL, apiKey, apiSecret string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
	}
}

// Validate asks the service to validate a free-text address.
// Failures to reach the service are reported in the result with status code 0 and the failure as the status,
// so they surface as connection errors. Only a cancelled context is returned as an error.
func (c *Client) Validate(ctx context.Context, address string) (models.TransportResult, error) {
	endpoint, err := url.JoinPath(c.baseURL, "validation")
	if err != nil {
		return models.TransportResult{}, errors.Wrap(err, "addy: invalid base url")
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	q.Set("secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return models.TransportResult{}, errors.Wrap(err, "addy: failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return models.TransportResult{}, errors.Wrap(ctxErr, "addy: request cancelled")
		}
		return models.TransportResult{Status: "Connection failed: " + sanitize(err)}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return models.TransportResult{Status: "Connection failed: " + sanitize(err)}, nil
	}

	return models.TransportResult{
		StatusCode: resp.StatusCode,
		Status:     statusDescription(resp),
		Body:       body,
	}, nil
}

// statusDescription returns the reason phrase the server sent, falling back to the standard text for the code
// and then to the raw status line.
func statusDescription(resp *http.Response) string {
	if reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); reason != "" {
		return reason
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

// sanitize strips the request URL, which carries the credentials, from transport errors.
func sanitize(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
