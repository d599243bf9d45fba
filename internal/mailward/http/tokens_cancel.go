package http

import (
	"errors"
	"net/http"

	"github.com/veridianlabs/mailward/internal/mailward/domain"
	"github.com/veridianlabs/mailward/internal/mailward/service"
	"github.com/veridianlabs/mailward/pkg/mailwardsdk"
	"github.com/veridianlabs/mailward/pkg/slogx"
)

type CancelHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Cancel Pending Token Endpoint
//	@Description	Delete the pending slot for (email, kind), immediately invalidating any credentials issued for it. Used when a request was mistaken or an address needs to be cut off.
//	@Tags			Tokens
//	@Produce		json
//	@Param			email	query	string	true	"Subject email address"
//	@Param			kind	query	string	true	"Action kind"	Enums(email_confirmation, password_reset, invitation, magic_link)
//	@Success		204		"slot deleted"
//	@Failure		400		{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	mailwardsdk.ErrorResponse	"token_not_found"
//	@Failure		500		{object}	mailwardsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/tokens [delete].
func (h *CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	query := r.URL.Query()
	email := query.Get("email")

	kind, err := domain.ParseActionKind(query.Get("kind"))
	if err != nil {
		mailwardsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.TokenService.Cancel(ctx, email, kind); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			mailwardsdk.ErrInvalidRequest.WriteError(w)
		case errors.Is(err, service.ErrTokenNotFound):
			mailwardsdk.ErrTokenNotFound.WriteError(w)
		default:
			log.Error("failed to cancel token", "err", err)
			mailwardsdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
