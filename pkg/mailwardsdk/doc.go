/*
Package mailwardsdk provides a client SDK for the mailward action token
service.

# Overview

mailward owns the token leg of email-driven account actions: confirming an
address, resetting a password, accepting an invitation, signing in with a
magic link. The platform backend asks mailward to issue a token, mailward
emails the subject a link and a short numeric code, and the UI drives the
two public calls: Verify (read-only preview) and Complete (consume and act).

# Getting Started

Create a Client with the service URL and, for management operations, a
pre-minted service bearer token:

	client := mailwardsdk.NewClient("https://mailward.example.com", serviceToken)

	// Issue a confirmation token for a subject your backend just created
	// (requires tokens:issue)
	issued, err := client.IssueToken(ctx, mailwardsdk.IssueTokenRequest{
		Email: "user@example.com",
		Kind:  "email_confirmation",
	})

	// Ask for a password reset; the response never says whether the
	// account exists (requires tokens:issue)
	_, err = client.RequestAction(ctx, mailwardsdk.IssueTokenRequest{
		Email: "user@example.com",
		Kind:  "password_reset",
	})

Public operations need no token:

	// Preview the pending action without consuming it; safe to repeat
	pending, err := client.Verify(ctx, email, kind, token)

	// Perform the action; at most one Complete succeeds per issuance
	done, err := client.Complete(ctx, mailwardsdk.CompleteRequest{
		Email:       email,
		Kind:        "password_reset",
		Token:       token,
		NewPassword: newPassword,
	})

# Verify vs Complete

Verify never consumes the token: mail scanners, link prefetchers and
landing-page loads can hit it freely. Only Complete consumes, and exactly
once; a second Complete with the same credential reports
OutcomeAlreadyCompleted.

# Error Handling

Every failure is a typed *APIError carrying the HTTP status and a
machine-readable code. Token operations use the outcome codes
(OutcomeTokenNotFound, OutcomeTokenExpired, OutcomeTokenMismatch,
OutcomeAlreadyCompleted); render token_not_found and token_mismatch with the
same user-facing copy so a probing caller learns nothing from the
difference.

	_, err := client.Verify(ctx, email, kind, token)
	if mailwardsdk.HasOutcome(err, mailwardsdk.OutcomeTokenExpired) {
		// offer to send a fresh link
	}

# Scope Requirements

Management operations require a bearer token with the matching scope:

  - tokens:issue: IssueToken, RequestAction
  - tokens:read:  ListPending
  - tokens:write: CancelToken

Verify, Complete and the health probes are public.
*/
package mailwardsdk
