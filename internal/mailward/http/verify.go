package http

import (
	"errors"
	"net/http"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Verify Action Token Endpoint
//	@Description	Check a presented credential (link token or numeric code) against the pending slot without consuming it. Safe to call any number of times; mail scanners and duplicate clicks cannot invalidate a token.
//	@Description	Served on both /v1/verify and /auth/callback; the latter is the exact link shape embedded in the action emails.
//	@Tags			Actions
//	@Produce		json
//	@Param			email		query		string						true	"Subject email address"
//	@Param			kind		query		string						true	"Action kind"	Enums(email_confirmation, password_reset, invitation, magic_link)
//	@Param			token		query		string						true	"Link token or numeric code"
//	@Param			redirect_to	query		string						false	"Echoed back so the UI can continue the flow"
//	@Success		200			{object}	mailwardsdk.VerifyResponse	"outcome, email, kind, metadata, issued_at, expires_at"
//	@Failure		400			{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	mailwardsdk.ErrorResponse	"token_not_found or token_mismatch"
//	@Failure		410			{object}	mailwardsdk.ErrorResponse	"token_expired"
//	@Failure		500			{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Extract query parameters (the action link carries them)
	query := r.URL.Query()
	email := query.Get("email")
	token := query.Get("token")
	redirectTo := query.Get("redirect_to")

	kind, err := domain.ParseActionKind(query.Get("kind"))
	if err != nil {
		mailwardsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	verification, err := h.TokenService.Verify(ctx, email, kind, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			mailwardsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrTokenNotFound):
			mailwardsdk.ErrTokenNotFound.WriteError(w)
		case errors.Is(err, service.ErrTokenMismatch):
			mailwardsdk.ErrTokenMismatch.WriteError(w)
		case errors.Is(err, service.ErrTokenExpired):
			mailwardsdk.ErrTokenExpired.WriteError(w)
		default:
			log.Error("failed to verify token", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	response := mailwardsdk.VerifyResponse{
		Outcome:    mailwardsdk.OutcomeOK,
		Email:      verification.Email,
		Kind:       verification.Kind.String(),
		Metadata:   verification.Metadata,
		IssuedAt:   verification.IssuedAt,
		ExpiresAt:  verification.ExpiresAt,
		RedirectTo: redirectTo,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
