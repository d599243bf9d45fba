package mailwardsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the mailward action token service.
// Public operations (Verify, Complete, health probes) work without a token;
// management operations (IssueToken, RequestAction, CancelToken, ListPending)
// require a service bearer token with the matching scope.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// APIToken is the pre-minted service JWT sent as a bearer token on
	// management operations. Leave empty for public-only consumers.
	APIToken string
}

// NewClient creates a client for the service at baseURL. The apiToken may be
// empty when only public operations are needed.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		APIToken: apiToken,
	}
}
