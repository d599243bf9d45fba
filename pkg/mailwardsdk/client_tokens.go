package mailwardsdk

import (
	"context"
	"net/http"
	"net/url"
)

// IssueToken opens (or replaces) the pending verification slot for the
// request's (email, kind) pair and returns the raw credentials. Use this for
// email_confirmation and invitation, where the service answers 201 with the
// full issuance. For password_reset and magic_link use RequestAction instead;
// the service masks those behind a fixed 202.
//
// Requires the tokens:issue scope.
func (c *Client) IssueToken(ctx context.Context, req IssueTokenRequest) (*IssueTokenResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuthRequest(ctx, http.MethodPost, "/v1/tokens", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var issueResp IssueTokenResponse
	if err := decodeJSON(resp, &issueResp, http.StatusCreated); err != nil {
		return nil, err
	}

	return &issueResp, nil
}

// RequestAction asks the service to issue a password_reset or magic_link
// token and email it to the subject. The response is a fixed 202 body that
// does not reveal whether the subject exists; the credentials travel only in
// the email.
//
// Requires the tokens:issue scope.
func (c *Client) RequestAction(ctx context.Context, req IssueTokenRequest) (*IssueAcceptedResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuthRequest(ctx, http.MethodPost, "/v1/tokens", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var accepted IssueAcceptedResponse
	if err := decodeJSON(resp, &accepted, http.StatusAccepted); err != nil {
		return nil, err
	}

	return &accepted, nil
}

// CancelToken deletes the pending slot for (email, kind), immediately
// invalidating any credentials issued for it. Returns an *APIError with
// OutcomeTokenNotFound when no slot exists.
//
// Requires the tokens:write scope.
func (c *Client) CancelToken(ctx context.Context, email, kind string) error {
	query := url.Values{}
	query.Set("email", email)
	query.Set("kind", kind)

	resp, err := c.doAuthRequest(ctx, http.MethodDelete, "/v1/tokens?"+query.Encode(), nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ListPending returns every slot held by a subject, newest first. Credential
// fingerprints are never included.
//
// Requires the tokens:read scope.
func (c *Client) ListPending(ctx context.Context, email string) (*ListPendingResponse, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, "/v1/tokens/"+url.PathEscape(email), nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp ListPendingResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

var jsonHeaders = map[string]string{
	"Content-Type": "application/json",
}
