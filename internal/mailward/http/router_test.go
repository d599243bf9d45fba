package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/veridianlabs/mailward/internal/mailward/domain"
	mailwardhttp "github.com/veridianlabs/mailward/internal/mailward/http"
	"github.com/veridianlabs/mailward/internal/mailward/mail"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/internal/mailward/store"
	"github.com/veridianlabs/mailward/internal/mailward/store/drivers/sqlite"
	"github.com/veridianlabs/mailward/pkg/cryptox"
	"github.com/veridianlabs/mailward/pkg/jwtx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	srv    *httptest.Server
	svc    *service.TokenService
	store  store.Store
	signer jwtx.Signer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256([]byte(testSecret), "mailward-test", nil)

	logger := slog.New(slog.DiscardHandler)

	svc := &service.TokenService{
		Store:  st,
		Signer: signer,
		Issuer: "mailward-test",
	}

	router := mailwardhttp.NewRouter(verifier, "test", st, logger)
	router.TokenService = svc
	router.Signer = signer
	router.Sender = mail.NewLogSender(logger)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	// Action links point at the public base URL, which for these tests is
	// the test server itself.
	svc.BaseURL = srv.URL

	return &fixture{srv: srv, svc: svc, store: st, signer: signer}
}

// bearer mints a service token with the given scopes, signed with the same
// secret the router's verifier trusts.
func (f *fixture) bearer(t *testing.T, scopes ...string) string {
	t.Helper()

	claims := jwtx.NewClaims(
		"svc-platform", "", scopes, nil, "",
		time.Hour, "mailward-test", nil, time.Now().UTC(),
	)
	token, err := f.signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func (f *fixture) do(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func (f *fixture) createSubject(t *testing.T, email, locale string) domain.Subject {
	t.Helper()

	now := time.Now().UTC()
	subj := domain.Subject{
		ID:        uuid.NewString(),
		Email:     email,
		Locale:    locale,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Subjects().CreateSubject(context.Background(), subj))
	return subj
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestIssueRequiresBearerToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", "", mailwardsdk.IssueTokenRequest{
		Email: "user@example.com",
		Kind:  "email_confirmation",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "invalid_token")
}

func TestIssueRequiresIssueScope(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:read"), mailwardsdk.IssueTokenRequest{
		Email: "user@example.com",
		Kind:  "email_confirmation",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "insufficient_scope")
}

func TestIssueConfirmationReturnsFullIssuance(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:issue"), mailwardsdk.IssueTokenRequest{
		Email:      "new@example.com",
		Kind:       "email_confirmation",
		Locale:     "es",
		Metadata:   map[string]string{"source": "signup_form"},
		RedirectTo: "https://app.example.com/welcome",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var issued mailwardsdk.IssueTokenResponse
	decodeBody(t, resp, &issued)

	require.Len(t, issued.Token, 43)
	require.Regexp(t, `^\d{6}$`, issued.Code)
	require.Equal(t, "email_confirmation", issued.Kind)
	require.Equal(t, "new@example.com", issued.Email)
	require.True(t, issued.ExpiresAt.After(time.Now()))

	u, err := url.Parse(issued.ActionURL)
	require.NoError(t, err)
	require.Equal(t, "/auth/callback", u.Path)
	require.Equal(t, issued.Token, u.Query().Get("token"))
	require.Equal(t, "https://app.example.com/welcome", u.Query().Get("redirect_to"))
}

func TestIssueRejectsBadInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	auth := f.bearer(t, "tokens:issue")

	t.Run("malformed JSON", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/v1/tokens", bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+auth)
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.srv.Client().Do(req)
		require.NoError(t, err)

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, resp, &errResp)
		require.Equal(t, mailwardsdk.ErrorCodeInvalidRequest, errResp.Error)
	})

	tests := []struct {
		name string
		req  mailwardsdk.IssueTokenRequest
	}{
		{"missing email", mailwardsdk.IssueTokenRequest{Kind: "email_confirmation"}},
		{"invalid email", mailwardsdk.IssueTokenRequest{Email: "not-an-email", Kind: "email_confirmation"}},
		{"unknown kind", mailwardsdk.IssueTokenRequest{Email: "user@example.com", Kind: "reset"}},
		{"bad redirect", mailwardsdk.IssueTokenRequest{Email: "user@example.com", Kind: "magic_link", RedirectTo: "not a url"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/v1/tokens", auth, tc.req)

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var errResp mailwardsdk.ErrorResponse
			decodeBody(t, resp, &errResp)
			require.Equal(t, mailwardsdk.ErrorCodeInvalidRequest, errResp.Error)
		})
	}
}

// The masked kinds must answer with the same bytes whether the subject
// exists or not; anything else turns the endpoint into an account oracle.
func TestMaskedKindsHideSubjectExistence(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	auth := f.bearer(t, "tokens:issue")
	f.createSubject(t, "known@example.com", "en")

	for _, kind := range []string{"password_reset", "magic_link"} {
		t.Run(kind, func(t *testing.T) {
			known := f.do(t, http.MethodPost, "/v1/tokens", auth, mailwardsdk.IssueTokenRequest{
				Email: "known@example.com",
				Kind:  kind,
			})
			require.Equal(t, http.StatusAccepted, known.StatusCode)
			knownBody := readBody(t, known)

			ghost := f.do(t, http.MethodPost, "/v1/tokens", auth, mailwardsdk.IssueTokenRequest{
				Email: "ghost@example.com",
				Kind:  kind,
			})
			require.Equal(t, http.StatusAccepted, ghost.StatusCode)
			ghostBody := readBody(t, ghost)

			require.Equal(t, knownBody, ghostBody)

			// The unknown subject really got nothing persisted.
			_, err := f.store.PendingTokens().GetPendingToken(context.Background(), "ghost@example.com", domain.ActionKind(kind))
			require.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestCallbackVerifyAndCompleteFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:issue"), mailwardsdk.IssueTokenRequest{
		Email:      "flow@example.com",
		Kind:       "email_confirmation",
		RedirectTo: "https://app.example.com/done",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var issued mailwardsdk.IssueTokenResponse
	decodeBody(t, resp, &issued)

	// The emailed link hits the callback; clicking it twice changes nothing.
	for range 2 {
		verifyResp, err := f.srv.Client().Get(issued.ActionURL)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, verifyResp.StatusCode)

		var verified mailwardsdk.VerifyResponse
		decodeBody(t, verifyResp, &verified)
		require.Equal(t, mailwardsdk.OutcomeOK, verified.Outcome)
		require.Equal(t, "flow@example.com", verified.Email)
		require.Equal(t, "email_confirmation", verified.Kind)
		require.Equal(t, "https://app.example.com/done", verified.RedirectTo)
	}

	// Complete consumes the token and confirms the address.
	completeResp := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email: "flow@example.com",
		Kind:  "email_confirmation",
		Token: issued.Token,
	})
	require.Equal(t, http.StatusOK, completeResp.StatusCode)
	var completed mailwardsdk.CompleteResponse
	decodeBody(t, completeResp, &completed)
	require.Equal(t, mailwardsdk.OutcomeOK, completed.Outcome)
	require.NotEmpty(t, completed.SubjectID)
	require.Empty(t, completed.SessionToken)

	subj, err := f.store.Subjects().GetSubjectByEmail(context.Background(), "flow@example.com")
	require.NoError(t, err)
	require.NotNil(t, subj.EmailConfirmedAt)

	// The consumed slot is invisible to read-only verification.
	verifyResp, err := f.srv.Client().Get(issued.ActionURL)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, verifyResp.StatusCode)
	var verifyErr mailwardsdk.ErrorResponse
	decodeBody(t, verifyResp, &verifyErr)
	require.Equal(t, mailwardsdk.OutcomeTokenNotFound, verifyErr.Error)

	// A duplicate completion with the matching credential is reported as such.
	dupResp := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email: "flow@example.com",
		Kind:  "email_confirmation",
		Token: issued.Token,
	})
	require.Equal(t, http.StatusConflict, dupResp.StatusCode)
	var dupErr mailwardsdk.ErrorResponse
	decodeBody(t, dupResp, &dupErr)
	require.Equal(t, mailwardsdk.OutcomeAlreadyCompleted, dupErr.Error)
}

func TestVerifyAcceptsNumericCode(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:issue"), mailwardsdk.IssueTokenRequest{
		Email:    "invitee@example.com",
		Kind:     "invitation",
		Metadata: map[string]string{"tenant": "acme", "role": "admin"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var issued mailwardsdk.IssueTokenResponse
	decodeBody(t, resp, &issued)

	query := url.Values{}
	query.Set("email", "invitee@example.com")
	query.Set("kind", "invitation")
	query.Set("token", issued.Code)

	verifyResp := f.do(t, http.MethodGet, "/v1/verify?"+query.Encode(), "", nil)
	require.Equal(t, http.StatusOK, verifyResp.StatusCode)

	var verified mailwardsdk.VerifyResponse
	decodeBody(t, verifyResp, &verified)
	require.Equal(t, "invitation", verified.Kind)
	require.Equal(t, map[string]string{"tenant": "acme", "role": "admin"}, verified.Metadata)
}

func TestVerifyOutcomeStatusCodes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:issue"), mailwardsdk.IssueTokenRequest{
		Email: "holder@example.com",
		Kind:  "email_confirmation",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	verify := func(email, kind, token string) *http.Response {
		query := url.Values{}
		query.Set("email", email)
		query.Set("kind", kind)
		query.Set("token", token)
		return f.do(t, http.MethodGet, "/v1/verify?"+query.Encode(), "", nil)
	}

	t.Run("wrong credential on existing slot", func(t *testing.T) {
		resp := verify("holder@example.com", "email_confirmation", "definitely-wrong")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, resp, &errResp)
		require.Equal(t, mailwardsdk.OutcomeTokenMismatch, errResp.Error)
	})

	t.Run("no slot at all", func(t *testing.T) {
		resp := verify("nobody@example.com", "email_confirmation", "whatever")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, resp, &errResp)
		require.Equal(t, mailwardsdk.OutcomeTokenNotFound, errResp.Error)
	})

	t.Run("unknown kind", func(t *testing.T) {
		resp := verify("holder@example.com", "reset", "whatever")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, resp, &errResp)
		require.Equal(t, mailwardsdk.ErrorCodeInvalidRequest, errResp.Error)
	})

	t.Run("missing token", func(t *testing.T) {
		resp := verify("holder@example.com", "email_confirmation", "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, resp, &errResp)
		require.Equal(t, mailwardsdk.ErrorCodeInvalidRequest, errResp.Error)
	})
}

func TestCompletePasswordResetOverHTTP(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.createSubject(t, "resetme@example.com", "en")

	iss, err := f.svc.Issue(context.Background(), "resetme@example.com", domain.KindPasswordReset, "", nil, "")
	require.NoError(t, err)

	// A reset without the new password is rejected before the token is
	// consumed.
	noPass := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email: "resetme@example.com",
		Kind:  "password_reset",
		Token: iss.Token,
	})
	require.Equal(t, http.StatusBadRequest, noPass.StatusCode)
	var noPassErr mailwardsdk.ErrorResponse
	decodeBody(t, noPass, &noPassErr)
	require.Equal(t, mailwardsdk.ErrorCodeInvalidRequest, noPassErr.Error)

	// The slot survived; the same token now completes with a password.
	done := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email:       "resetme@example.com",
		Kind:        "password_reset",
		Token:       iss.Token,
		NewPassword: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, done.StatusCode)
	var completed mailwardsdk.CompleteResponse
	decodeBody(t, done, &completed)
	require.Equal(t, mailwardsdk.OutcomeOK, completed.Outcome)

	subj, err := f.store.Subjects().GetSubjectByEmail(context.Background(), "resetme@example.com")
	require.NoError(t, err)
	require.NotNil(t, subj.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("hunter2hunter2", *subj.PasswordHash))
}

func TestCompleteMagicLinkReturnsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	subj := f.createSubject(t, "signin@example.com", "en")

	iss, err := f.svc.Issue(context.Background(), "signin@example.com", domain.KindMagicLink, "", nil, "")
	require.NoError(t, err)

	done := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email: "signin@example.com",
		Kind:  "magic_link",
		Token: iss.Token,
	})
	require.Equal(t, http.StatusOK, done.StatusCode)
	var completed mailwardsdk.CompleteResponse
	decodeBody(t, done, &completed)
	require.NotEmpty(t, completed.SessionToken)

	verifier := jwtx.NewVerifierHS256([]byte(testSecret), "mailward-test", nil)
	claims, err := verifier.Verify(completed.SessionToken)
	require.NoError(t, err)
	require.Equal(t, subj.ID, claims.Subject)
	require.Equal(t, []string{"magic_link"}, claims.AMR)
	require.Equal(t, "signin@example.com", claims.Email)
}

func TestCancelEndpoint(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/v1/tokens", f.bearer(t, "tokens:issue"), mailwardsdk.IssueTokenRequest{
		Email: "cancel@example.com",
		Kind:  "invitation",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	query := url.Values{}
	query.Set("email", "cancel@example.com")
	query.Set("kind", "invitation")
	path := "/v1/tokens?" + query.Encode()

	t.Run("requires write scope", func(t *testing.T) {
		resp := f.do(t, http.MethodDelete, path, f.bearer(t, "tokens:read"), nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("deletes then reports missing", func(t *testing.T) {
		auth := f.bearer(t, "tokens:write")

		resp := f.do(t, http.MethodDelete, path, auth, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		again := f.do(t, http.MethodDelete, path, auth, nil)
		require.Equal(t, http.StatusNotFound, again.StatusCode)
		var errResp mailwardsdk.ErrorResponse
		decodeBody(t, again, &errResp)
		require.Equal(t, mailwardsdk.OutcomeTokenNotFound, errResp.Error)
	})
}

func TestListEndpointHidesFingerprints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	auth := f.bearer(t, "tokens:issue")

	resp := f.do(t, http.MethodPost, "/v1/tokens", auth, mailwardsdk.IssueTokenRequest{
		Email: "busy@example.com",
		Kind:  "email_confirmation",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var confirmation mailwardsdk.IssueTokenResponse
	decodeBody(t, resp, &confirmation)

	resp = f.do(t, http.MethodPost, "/v1/tokens", auth, mailwardsdk.IssueTokenRequest{
		Email:    "busy@example.com",
		Kind:     "invitation",
		Metadata: map[string]string{"tenant": "acme"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var invitation mailwardsdk.IssueTokenResponse
	decodeBody(t, resp, &invitation)

	// Consume the invitation so the listing shows a tombstone.
	done := f.do(t, http.MethodPost, "/v1/complete", "", mailwardsdk.CompleteRequest{
		Email: "busy@example.com",
		Kind:  "invitation",
		Token: invitation.Token,
	})
	require.Equal(t, http.StatusOK, done.StatusCode)
	done.Body.Close()

	listResp := f.do(t, http.MethodGet, "/v1/tokens/Busy@Example.com", f.bearer(t, "tokens:read"), nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	raw := readBody(t, listResp)

	// Neither raw credentials nor their fingerprints may appear.
	require.NotContains(t, raw, confirmation.Token)
	require.NotContains(t, raw, cryptox.FingerprintToken(confirmation.Token))
	require.NotContains(t, raw, cryptox.FingerprintToken(invitation.Token))
	require.NotContains(t, raw, "hash")

	var listing mailwardsdk.ListPendingResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &listing))
	require.Equal(t, "busy@example.com", listing.Email)
	require.Len(t, listing.Tokens, 2)

	// Newest first: the invitation was issued second and is completed.
	require.Equal(t, "invitation", listing.Tokens[0].Kind)
	require.NotNil(t, listing.Tokens[0].CompletedAt)
	require.Equal(t, "email_confirmation", listing.Tokens[1].Kind)
	require.Nil(t, listing.Tokens[1].CompletedAt)
}

func TestListRequiresReadScope(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/v1/tokens/someone@example.com", f.bearer(t, "tokens:issue"), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	live := f.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, live.StatusCode)
	var liveHealth mailwardsdk.HealthResponse
	decodeBody(t, live, &liveHealth)
	require.Equal(t, "ok", liveHealth.Status)
	require.Equal(t, "test", liveHealth.Version)

	ready := f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, ready.StatusCode)
	var readyHealth mailwardsdk.HealthResponse
	decodeBody(t, ready, &readyHealth)
	require.Equal(t, "ok", readyHealth.Status)
	require.NotNil(t, readyHealth.Checks)
	require.Equal(t, "ok", readyHealth.Checks.Database)
	require.Equal(t, "ok", readyHealth.Checks.Signer)
	require.Equal(t, "ok", readyHealth.Checks.Mailer)
}

func TestReadyzDegradedWithoutMailer(t *testing.T) {
	t.Parallel()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	verifier := jwtx.NewVerifierHS256([]byte(testSecret), "mailward-test", nil)

	router := mailwardhttp.NewRouter(verifier, "test", st, slog.New(slog.DiscardHandler))
	router.TokenService = &service.TokenService{Store: st}
	// No Signer, no Sender: the probe must flag both.
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/readyz")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health mailwardsdk.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()

	require.Equal(t, "degraded", health.Status)
	require.Contains(t, health.Checks.Signer, "not configured")
	require.Contains(t, health.Checks.Mailer, "not configured")
	require.Equal(t, "ok", health.Checks.Database)
}
