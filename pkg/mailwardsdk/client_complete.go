package mailwardsdk

import (
	"context"
	"net/http"
)

// Complete consumes the pending token and performs the action it guards:
// confirming the email, setting the new password, accepting the invitation,
// or signing the subject in (magic_link responses carry SessionToken).
// At most one Complete succeeds per issuance; concurrent duplicates observe
// OutcomeAlreadyCompleted. This is a public endpoint.
//
// Failures arrive as *APIError with one of the outcome codes:
// OutcomeTokenNotFound, OutcomeTokenExpired, OutcomeTokenMismatch,
// OutcomeAlreadyCompleted.
func (c *Client) Complete(ctx context.Context, req CompleteRequest) (*CompleteResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/complete", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var completeResp CompleteResponse
	if err := decodeJSON(resp, &completeResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &completeResp, nil
}
