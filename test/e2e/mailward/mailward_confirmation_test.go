package mailward_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
)

// TestEmailConfirmationFlow walks the full confirmation cycle: issue, read
// the emailed credentials, verify repeatedly, complete once, then watch the
// consumed slot refuse further use.
func TestEmailConfirmationFlow(t *testing.T) {
	baseURL, container, cleanup := setupMailwardContainer(t)
	defer cleanup()

	client := authedClient(t, baseURL, "tokens:issue")
	email := strings.ToLower(gofakeit.Email())
	ctx := t.Context()

	issued, err := client.IssueToken(ctx, mailwardsdk.IssueTokenRequest{
		Email:      email,
		Kind:       "email_confirmation",
		RedirectTo: "https://app.example.com/welcome",
	})
	require.NoError(t, err)
	require.Len(t, issued.Token, 43)
	require.Regexp(t, `^\d{6}$`, issued.Code)

	// The emailed credentials must match what the API returned to the caller.
	mailToken, mailCode := actionMailCredentials(t, container, email, "email_confirmation")
	require.Equal(t, issued.Token, mailToken)
	require.Equal(t, issued.Code, mailCode)
	t.Logf("Action email captured for %s", email)

	// Verify is non-consuming: twice with the link token, once with the code.
	for range 2 {
		verified, err := client.Verify(ctx, email, "email_confirmation", issued.Token)
		require.NoError(t, err)
		require.Equal(t, mailwardsdk.OutcomeOK, verified.Outcome)
	}
	verified, err := client.Verify(ctx, email, "email_confirmation", issued.Code)
	require.NoError(t, err)
	require.Equal(t, email, verified.Email)

	completed, err := client.Complete(ctx, mailwardsdk.CompleteRequest{
		Email: email,
		Kind:  "email_confirmation",
		Token: issued.Token,
	})
	require.NoError(t, err)
	require.Equal(t, mailwardsdk.OutcomeOK, completed.Outcome)
	require.NotEmpty(t, completed.SubjectID)

	// Consumed: invisible to verify, conflict on a repeat completion.
	_, err = client.Verify(ctx, email, "email_confirmation", issued.Token)
	require.True(t, mailwardsdk.HasOutcome(err, mailwardsdk.OutcomeTokenNotFound), "got: %v", err)

	_, err = client.Complete(ctx, mailwardsdk.CompleteRequest{
		Email: email,
		Kind:  "email_confirmation",
		Token: issued.Token,
	})
	require.True(t, mailwardsdk.HasOutcome(err, mailwardsdk.OutcomeAlreadyCompleted), "got: %v", err)

	t.Logf("Confirmation completed exactly once for %s", email)
}

// TestReissueInvalidatesPreviousCredentials verifies the one-slot rule: a
// second issue for the same (email, kind) replaces the credentials, and the
// old ones stop matching immediately.
func TestReissueInvalidatesPreviousCredentials(t *testing.T) {
	baseURL, _, cleanup := setupMailwardContainer(t)
	defer cleanup()

	client := authedClient(t, baseURL, "tokens:issue")
	email := strings.ToLower(gofakeit.Email())
	ctx := t.Context()

	first, err := client.IssueToken(ctx, mailwardsdk.IssueTokenRequest{
		Email: email,
		Kind:  "email_confirmation",
	})
	require.NoError(t, err)

	second, err := client.IssueToken(ctx, mailwardsdk.IssueTokenRequest{
		Email: email,
		Kind:  "email_confirmation",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	// The stale token no longer matches the slot.
	_, err = client.Verify(ctx, email, "email_confirmation", first.Token)
	require.True(t, mailwardsdk.HasOutcome(err, mailwardsdk.OutcomeTokenMismatch), "got: %v", err)

	// The fresh one completes normally.
	completed, err := client.Complete(ctx, mailwardsdk.CompleteRequest{
		Email: email,
		Kind:  "email_confirmation",
		Token: second.Token,
	})
	require.NoError(t, err)
	require.Equal(t, mailwardsdk.OutcomeOK, completed.Outcome)
}
