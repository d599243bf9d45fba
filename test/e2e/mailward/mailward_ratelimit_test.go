package mailward_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
)

// TestRateLimitCompleteEndpoint verifies that /v1/complete is rate limited.
// The endpoint is public and consumes credentials, so it carries the strict
// per-IP limit (5 req/min) against brute forcing the numeric codes.
func TestRateLimitCompleteEndpoint(t *testing.T) {
	baseURL, _, cleanup := setupMailwardContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := mailwardsdk.NewClient(baseURL, "")
	email := strings.ToLower(gofakeit.Email())
	ctx := t.Context()

	// Make 6 rapid attempts; the first 5 fail on the missing slot, the 6th
	// on the limiter.
	var lastErr error
	for i := range 6 {
		_, err := client.Complete(ctx, mailwardsdk.CompleteRequest{
			Email: email,
			Kind:  "magic_link",
			Token: "000000",
		})
		if i < 5 {
			require.True(t, mailwardsdk.HasOutcome(err, mailwardsdk.OutcomeTokenNotFound),
				"request %d should fail on the slot, not the limiter: %v", i+1, err)
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.True(t, mailwardsdk.HasOutcome(lastErr, mailwardsdk.ErrorCodeRateLimited), "got: %v", lastErr)
	t.Logf("Successfully rate limited after 5 requests to /v1/complete")
}

// TestRateLimitIssueEndpoint verifies that issuance is rate limited per
// service identity (moderate limit, 20 req/min).
func TestRateLimitIssueEndpoint(t *testing.T) {
	baseURL, _, cleanup := setupMailwardContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authedClient(t, baseURL, "tokens:issue")
	email := strings.ToLower(gofakeit.Email())
	ctx := t.Context()

	var lastErr error
	for i := range 21 {
		_, err := client.IssueToken(ctx, mailwardsdk.IssueTokenRequest{
			Email: email,
			Kind:  "email_confirmation",
		})
		if i < 20 {
			require.NoError(t, err, "request %d should not be rate limited yet", i+1)
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.True(t, mailwardsdk.HasOutcome(lastErr, mailwardsdk.ErrorCodeRateLimited), "got: %v", lastErr)
	t.Logf("Successfully rate limited after 20 requests to /v1/tokens")
}
