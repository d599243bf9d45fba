package mailwardsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Verify checks a presented credential (link token or numeric code) against
// the pending slot without consuming it. Safe to call any number of times;
// link prefetchers and preview fetches cannot invalidate a token. This is a
// public endpoint.
//
// Failures arrive as *APIError with one of the outcome codes:
// OutcomeTokenNotFound, OutcomeTokenExpired, OutcomeTokenMismatch.
func (c *Client) Verify(ctx context.Context, email, kind, token string) (*VerifyResponse, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("kind", kind)
	query.Set("token", token)

	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/verify?"+query.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var verifyResp VerifyResponse
	if err := decodeJSON(resp, &verifyResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &verifyResp, nil
}
