package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/pkg/httpx"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

type CompleteHandler struct {
	TokenService *service.TokenService
	Validate     *validator.Validate
}

// ServeHTTP godoc
//
//	@Summary		Complete Action Endpoint
//	@Description	Consume the pending token and perform the action it guards: confirm the email, set the new password, accept the invitation, or sign in (magic_link responses carry session_token).
//	@Description	At most one completion succeeds per issuance; concurrent or repeated attempts observe already_completed.
//	@Tags			Actions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		mailwardsdk.CompleteRequest		true	"Complete request"
//	@Success		200		{object}	mailwardsdk.CompleteResponse	"outcome, email, kind, subject_id, completed_at"
//	@Failure		400		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	mailwardsdk.ErrorResponse		"token_not_found or token_mismatch"
//	@Failure		409		{object}	mailwardsdk.ErrorResponse		"already_completed"
//	@Failure		410		{object}	mailwardsdk.ErrorResponse		"token_expired"
//	@Failure		500		{object}	mailwardsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/complete [post].
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Parse JSON request body
	var req mailwardsdk.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mailwardsdk.ErrInvalidJSONBody.WriteError(w)
		return
	}

	// Validate the DTO before anything can consume the token
	if err := h.Validate.Struct(req); err != nil {
		mailwardsdk.NewAPIError(
			http.StatusBadRequest,
			mailwardsdk.ErrorCodeInvalidRequest,
			validationMessage(err),
		).WriteError(w)
		return
	}

	kind, err := domain.ParseActionKind(req.Kind)
	if err != nil {
		mailwardsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	completion, err := h.TokenService.Complete(ctx, req.Email, kind, req.Token, service.CompleteParams{
		NewPassword: req.NewPassword,
	})
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
		case errors.Is(err, service.ErrAlreadyCompleted):
			mailwardsdk.ErrAlreadyCompleted.WriteError(w)
		default:
			log.Error("failed to complete action", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	response := mailwardsdk.CompleteResponse{
		Outcome:      mailwardsdk.OutcomeOK,
		Email:        completion.Email,
		Kind:         completion.Kind.String(),
		SubjectID:    completion.SubjectID,
		CompletedAt:  completion.CompletedAt,
		SessionToken: completion.SessionToken,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
